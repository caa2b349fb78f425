/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"
)

// FormatPercent renders a win percentage such as 0.6667 as "66.67%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100.0)
}

// BuildStandingsOutput formats standings into an aligned text table, or a
// short explanation when standings are not yet available.
func BuildStandingsOutput(st Standings) string {
	switch st.Phase {
	case PhaseNoData:
		return "No round data has been posted yet\n"
	case PhasePartialSwiss:
		return "Standings are not available until the final Swiss round is fully reported\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n", st.Round))

	headers := []string{"Place", "Name", "Record", "Pts", "OWP", "OOWP"}
	var rows [][]string
	for _, r := range st.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", r.Place),
			r.Player.DisplayName(),
			r.Record.String(),
			fmt.Sprintf("%d", r.Record.MatchPoints),
			FormatPercent(r.OWP),
			FormatPercent(r.OOWP),
		})
	}
	writeTable(&sb, headers, rows)

	return sb.String()
}

// BuildPlayerOutput formats one player's standing and the opponents behind
// their OWP.
func BuildPlayerOutput(d PlayerDetail) string {
	var sb strings.Builder
	r := d.Row
	sb.WriteString(fmt.Sprintf("%v (%v)\n", r.Player.DisplayName(), r.Player.ID))
	sb.WriteString(fmt.Sprintf("Place: %d  Record: %v  Pts: %d\n", r.Place,
		r.Record, r.Record.MatchPoints))
	sb.WriteString(fmt.Sprintf("Win%%: %v  OWP: %v  OOWP: %v\n\n",
		FormatPercent(r.WinPct), FormatPercent(r.OWP), FormatPercent(r.OOWP)))

	if len(d.Opponents) == 0 {
		sb.WriteString("No Swiss opponents\n")
		return sb.String()
	}
	headers := []string{"Place", "Opponent", "Record", "Win%", "OWP"}
	var rows [][]string
	for _, o := range d.Opponents {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", o.Place),
			o.Player.DisplayName(),
			o.Record.String(),
			FormatPercent(o.WinPct),
			FormatPercent(o.OWP),
		})
	}
	writeTable(&sb, headers, rows)

	return sb.String()
}

// BuildPairingsOutput formats a round's pairings into an aligned table.
func BuildPairingsOutput(rp RoundPairings) string {
	var sb strings.Builder

	status := "in progress"
	if rp.Complete {
		status = "complete"
	}
	sb.WriteString(fmt.Sprintf("%v Pairings (%v):\n\n", rp.Label, status))

	headers := []string{"Table", "Player 1", "Result", "Player 2"}
	var rows [][]string
	for _, p := range rp.Pairings {
		var table, p2 string
		if p.IsBye {
			table = "n/a"
			p2 = byeSeatLabel
		} else {
			table = fmt.Sprintf("%d.", p.Table)
			p2 = seatString(p.Player2)
		}
		rows = append(rows, []string{table, seatString(p.Player1),
			p.ResultString(), p2})
	}
	writeTable(&sb, headers, rows)

	return sb.String()
}

// BuildRoundsOutput lists the snapshot's stages and rounds.
func BuildRoundsOutput(s *Snapshot) string {
	var sb strings.Builder
	rounds := s.Rounds()
	if len(rounds) == 0 {
		return "No rounds posted\n"
	}

	headers := []string{"Round", "Stage", "Matches", "Status"}
	var rows [][]string
	for _, r := range rounds {
		status := "in progress"
		if r.IsComplete() {
			status = "complete"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Number),
			StageLabel(r.Kind, len(r.Matches)),
			fmt.Sprintf("%d", len(r.Matches)),
			status,
		})
	}
	writeTable(&sb, headers, rows)
	sb.WriteString(fmt.Sprintf("Status: %v\n", s.Phase()))

	return sb.String()
}

func seatString(s Seat) string {
	return fmt.Sprintf("%s(%v)", s.Name, s.Record)
}

// BuildTable renders rows under headers as space aligned columns.
func BuildTable(headers []string, rows [][]string) string {
	var sb strings.Builder
	writeTable(&sb, headers, rows)
	return sb.String()
}

func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	// Compute column widths
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	var fmtStrBuilder strings.Builder
	for _, w := range colWidths {
		fmtStrBuilder.WriteString(fmt.Sprintf("%%-%ds  ", w))
	}
	fmtStr := strings.TrimRight(fmtStrBuilder.String(), " ") + "\n"

	sb.WriteString(strings.TrimRight(fmt.Sprintf(fmtStr, toAnySlice(headers)...), " \n") + "\n")
	for _, row := range rows {
		sb.WriteString(strings.TrimRight(fmt.Sprintf(fmtStr, toAnySlice(row)...), " \n") + "\n")
	}
	sb.WriteString("\n")
}

func toAnySlice[T any](slice []T) []any {
	result := make([]any, len(slice))
	for i, v := range slice {
		result[i] = v
	}
	return result
}
