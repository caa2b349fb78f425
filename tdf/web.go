/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tdf

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/swiss"
)

// ParseWeb scrapes a published pairings page. The page carries one
// div.pod per division, each holding one table.round per round:
//
//	<div class="pod" data-division="Masters">
//	  <table class="round" data-round="1" data-type="3">
//	    <tr><td class="table">1</td>
//	        <td class="p1" data-id="123">Ann Smith</td>
//	        <td class="result">W-L</td>
//	        <td class="p2" data-id="456">Bob Jones</td></tr>
//
// The page has no birth dates so every player's birth year is unknown.
func ParseWeb(r io.Reader, cfg swiss.Config) (*Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("tdf.web: read failed: %w", err)
	}
	return parseWeb(data, cfg)
}

func parseWeb(data []byte, cfg swiss.Config) (*Event, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tdf.web: invalid pairings page: %w", err)
	}

	ev := &Event{
		Name:      strings.TrimSpace(doc.Find("h1.event").First().Text()),
		ID:        strings.TrimSpace(doc.Find("h1.event").First().AttrOr("data-id", "")),
		City:      strings.TrimSpace(doc.Find(".event-city").First().Text()),
		Digest:    digest(data),
		Source:    SourceWeb,
		Divisions: make(map[swiss.Division]*swiss.Snapshot),
	}
	if start, err := internal.ParseDateOrZero(doc.Find(".event-date").First().Text()); err == nil {
		ev.StartDate = start
	}

	doc.Find("div.pod").Each(func(_ int, pod *goquery.Selection) {
		div := swiss.DivisionUnknown
		if d, err := swiss.ParseDivision(pod.AttrOr("data-division", "")); err == nil {
			div = d
		}
		if _, dup := ev.Divisions[div]; dup {
			ev.warn(0, fmt.Sprintf("duplicate %v pod ignored", div))
			return
		}
		ev.Divisions[div] = ev.parsePod(pod, cfg)
	})
	if len(ev.Divisions) == 0 {
		return nil, ErrNoPods
	}

	return ev, nil
}

func (ev *Event) parsePod(pod *goquery.Selection, cfg swiss.Config) *swiss.Snapshot {
	var rounds []swiss.Round
	var players []swiss.Player
	seen := make(map[string]bool)
	addPlayer := func(cell *goquery.Selection) string {
		id := strings.TrimSpace(cell.AttrOr("data-id", ""))
		if id == "" || seen[id] {
			return id
		}
		seen[id] = true
		first, last := splitName(cell.Text())
		players = append(players, swiss.Player{ID: id, FirstName: first,
			LastName: last})
		return id
	}

	pod.Find("table.round").Each(func(_ int, tbl *goquery.Selection) {
		rawNum := tbl.AttrOr("data-round", "")
		num, err := strconv.Atoi(strings.TrimSpace(rawNum))
		if err != nil || num <= 0 {
			ev.warn(0, fmt.Sprintf("round with unparsable number %q skipped", rawNum))
			return
		}
		round := swiss.Round{Number: num,
			Kind: cfg.KindOf(tbl.AttrOr("data-type", cfg.SwissRoundType))}

		tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
			p1 := row.Find("td.p1")
			if p1.Length() == 0 {
				// header row
				return
			}
			m := swiss.Match{
				Player1: addPlayer(p1),
				Player2: addPlayer(row.Find("td.p2")),
				Outcome: parseResult(row.Find("td.result").Text()),
			}
			if n, err := strconv.Atoi(strings.TrimSpace(row.Find("td.table").Text())); err == nil {
				m.Table = n
			}
			round.Matches = append(round.Matches, m)
		})
		rounds = append(rounds, round)
	})

	return swiss.NewSnapshot(players, rounds)
}

// parseResult maps the result column, written from player 1's side.
func parseResult(s string) swiss.Outcome {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return swiss.OutcomeUnreported
	case "W-L", "1-0":
		return swiss.OutcomePlayer1Win
	case "L-W", "0-1":
		return swiss.OutcomePlayer2Win
	case "T-T", "D-D":
		return swiss.OutcomeTie
	case "L-L", "0-0":
		return swiss.OutcomeDoubleLoss
	case "BYE":
		return swiss.OutcomeBye
	}
	return swiss.Outcome(-1)
}

// splitName treats the final word as the last name.
func splitName(full string) (string, string) {
	full = internal.NormalizeName(full)
	idx := strings.LastIndex(full, " ")
	if idx < 0 {
		return full, ""
	}
	return full[:idx], full[idx+1:]
}
