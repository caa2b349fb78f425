/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikeb26/swiss-standings/swiss"
)

// BuildEventOutput summarizes the event and the state of each division.
func BuildEventOutput(ev *Event) string {
	var sb strings.Builder

	sb.WriteString(ev.Name)
	if ev.City != "" {
		sb.WriteString(fmt.Sprintf(" (%v)", ev.City))
	}
	sb.WriteString("\n")
	if !ev.StartDate.IsZero() {
		sb.WriteString(fmt.Sprintf("Date: %v\n", ev.StartDate.Format("Mon Jan 2, 2006")))
	}
	if ev.ID != "" {
		sb.WriteString(fmt.Sprintf("Sanction: %v\n", ev.ID))
	}
	sb.WriteString(fmt.Sprintf("Source: %v\n\n", ev.Source))

	headers := []string{"Division", "Players", "Rounds", "Stage", "Status"}
	var rows [][]string
	for _, div := range ev.DivisionList() {
		snap := ev.Divisions[div]
		stage := "-"
		if stages := snap.Stages(); len(stages) > 0 {
			stage = stages[len(stages)-1].Name
		}
		rows = append(rows, []string{
			div.String(),
			fmt.Sprintf("%d", len(snap.Players())),
			fmt.Sprintf("%d", len(snap.Rounds())),
			stage,
			snap.Phase().String(),
		})
	}
	sb.WriteString(swiss.BuildTable(headers, rows))

	if n := countWarnings(ev); n > 0 {
		sb.WriteString(fmt.Sprintf("%d data warnings; see logs for details\n", n))
	}

	return sb.String()
}

// BuildAgeDivisionOutput lists, per pod, players whose birth year places
// them in a different age division for the event's season.
func BuildAgeDivisionOutput(ev *Event) string {
	season := ev.SeasonStartYear()
	if season == 0 {
		return "Event start date unknown; cannot determine age divisions\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Season %d-%d\n\n", season, season+1))

	headers := []string{"Pod", "Player", "Born", "Age Division"}
	var rows [][]string
	for _, pod := range ev.DivisionList() {
		groups := ev.Divisions[pod].GroupByDivision(season)
		divs := make([]swiss.Division, 0, len(groups))
		for d := range groups {
			divs = append(divs, d)
		}
		sort.Sort(swiss.DivisionSorter(divs))
		for _, d := range divs {
			if d == pod || pod == swiss.DivisionUnknown {
				continue
			}
			for _, p := range groups[d] {
				born := "?"
				if p.BirthYear != 0 {
					born = fmt.Sprintf("%d", p.BirthYear)
				}
				rows = append(rows, []string{pod.String(), p.DisplayName(), born,
					d.String()})
			}
		}
	}
	if len(rows) == 0 {
		sb.WriteString("All players are in their age division's pod\n")
		return sb.String()
	}
	sb.WriteString(swiss.BuildTable(headers, rows))

	return sb.String()
}

func countWarnings(ev *Event) int {
	n := len(ev.Warnings)
	for _, snap := range ev.Divisions {
		n += len(snap.Warnings())
	}
	return n
}
