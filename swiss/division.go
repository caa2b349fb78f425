/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"
	"time"
)

// Division is an age division. Divisions are a projection over Player and
// play no part in scoring.
type Division int

const (
	DivisionUnknown Division = iota
	DivisionJunior
	DivisionSenior
	DivisionMasters
)

func (d Division) String() string {
	switch d {
	case DivisionJunior:
		return "Junior"
	case DivisionSenior:
		return "Senior"
	case DivisionMasters:
		return "Masters"
	default:
		return "Unknown"
	}
}

// ParseDivision accepts a division name case-insensitively, including the
// plural forms used on the command line ("juniors", "seniors").
func ParseDivision(s string) (Division, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "junior", "jr":
		return DivisionJunior, nil
	case "senior", "sr":
		return DivisionSenior, nil
	case "master", "ma":
		return DivisionMasters, nil
	}
	return DivisionUnknown, fmt.Errorf("unknown division %q", s)
}

// seasons roll over on July 1
const seasonStartMonth = time.July

// SeasonStartYear returns the calendar year in which the season containing
// date began.
func SeasonStartYear(date time.Time) int {
	if date.Month() >= seasonStartMonth {
		return date.Year()
	}
	return date.Year() - 1
}

// DivisionOf classifies a birth year for the season beginning in
// seasonStartYear.
func DivisionOf(birthYear int, seasonStartYear int) Division {
	if birthYear <= 0 {
		return DivisionUnknown
	}
	switch {
	case birthYear >= seasonStartYear-11:
		return DivisionJunior
	case birthYear >= seasonStartYear-15:
		return DivisionSenior
	default:
		return DivisionMasters
	}
}

// GroupByDivision partitions the snapshot's registered players by division.
func (s *Snapshot) GroupByDivision(seasonStartYear int) map[Division][]Player {
	out := make(map[Division][]Player)
	for _, p := range s.players {
		if p.placeholder {
			continue
		}
		d := DivisionOf(p.BirthYear, seasonStartYear)
		out[d] = append(out[d], p)
	}
	return out
}

// DivisionSorter orders divisions for display: Masters first, then Senior,
// Junior and finally Unknown.
type DivisionSorter []Division

func (s DivisionSorter) Len() int { return len(s) }

func (s DivisionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s DivisionSorter) Less(i, j int) bool {
	return divisionRank(s[i]) < divisionRank(s[j])
}

func divisionRank(d Division) int {
	switch d {
	case DivisionMasters:
		return 0
	case DivisionSenior:
		return 1
	case DivisionJunior:
		return 2
	default:
		return 3
	}
}
