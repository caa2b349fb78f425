/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tdf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/swiss"
)

// tournament operations file layout
type xmlTournament struct {
	XMLName xml.Name    `xml:"tournament"`
	Data    xmlData     `xml:"data"`
	Players []xmlPlayer `xml:"players>player"`
	Pods    []xmlPod    `xml:"pods>pod"`
}

type xmlData struct {
	Name      string `xml:"name"`
	ID        string `xml:"id"`
	City      string `xml:"city"`
	StartDate string `xml:"startdate"`
}

type xmlPlayer struct {
	UserID    string `xml:"userid,attr"`
	FirstName string `xml:"firstname"`
	LastName  string `xml:"lastname"`
	BirthDate string `xml:"birthdate"`
}

type xmlPod struct {
	Category string     `xml:"category,attr"`
	Rounds   []xmlRound `xml:"rounds>round"`
}

type xmlRound struct {
	Number  string     `xml:"number,attr"`
	Type    string     `xml:"type,attr"`
	Stage   string     `xml:"stage,attr"`
	Matches []xmlMatch `xml:"matches>match"`
}

type xmlMatch struct {
	Outcome     string    `xml:"outcome,attr"`
	Player1     xmlPlayer `xml:"player1"`
	Player2     xmlPlayer `xml:"player2"`
	Player      xmlPlayer `xml:"player"`
	TableNumber string    `xml:"tablenumber"`
}

// Parse reads a tournament operations XML file. Problems with individual
// rounds or matches are recorded as warnings; only a structurally unreadable
// file or one without pods is an error.
func Parse(r io.Reader, cfg swiss.Config) (*Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("tdf.parse: read failed: %w", err)
	}
	return parseXML(data, cfg)
}

func parseXML(data []byte, cfg swiss.Config) (*Event, error) {
	var raw xmlTournament
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tdf.parse: invalid tournament file: %w", err)
	}
	if len(raw.Pods) == 0 {
		return nil, ErrNoPods
	}

	ev := &Event{
		Name:      strings.TrimSpace(raw.Data.Name),
		ID:        strings.TrimSpace(raw.Data.ID),
		City:      strings.TrimSpace(raw.Data.City),
		Digest:    digest(data),
		Source:    SourceXML,
		Divisions: make(map[swiss.Division]*swiss.Snapshot),
	}

	if start, err := internal.ParseDateOrZero(raw.Data.StartDate); err != nil {
		ev.warn(0, fmt.Sprintf("unparsable start date %q", raw.Data.StartDate))
	} else {
		ev.StartDate = start
	}

	roster := make(map[string]swiss.Player)
	for _, p := range raw.Players {
		id := strings.TrimSpace(p.UserID)
		roster[id] = swiss.Player{
			ID:        id,
			FirstName: internal.NormalizeName(p.FirstName),
			LastName:  internal.NormalizeName(p.LastName),
			BirthYear: internal.YearOrZero(p.BirthDate),
		}
	}

	for _, pod := range raw.Pods {
		div := podDivision(pod.Category)
		if _, dup := ev.Divisions[div]; dup {
			ev.warn(0, fmt.Sprintf("duplicate %v pod (category %q) ignored", div,
				pod.Category))
			continue
		}
		ev.Divisions[div] = ev.buildPod(pod, roster, cfg)
	}

	return ev, nil
}

// buildPod converts one pod. Only players referenced by the pod's matches
// are included; the snapshot substitutes placeholders for ids missing from
// the roster.
func (ev *Event) buildPod(pod xmlPod, roster map[string]swiss.Player,
	cfg swiss.Config) *swiss.Snapshot {

	var rounds []swiss.Round
	var players []swiss.Player
	seen := make(map[string]bool)
	addPlayer := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		if p, ok := roster[id]; ok {
			players = append(players, p)
		}
	}

	for _, xr := range pod.Rounds {
		num, err := strconv.Atoi(strings.TrimSpace(xr.Number))
		if err != nil || num <= 0 {
			ev.warn(0, fmt.Sprintf("round with unparsable number %q skipped",
				xr.Number))
			continue
		}
		round := swiss.Round{Number: num, Kind: cfg.KindOf(xr.Type)}
		for _, xm := range xr.Matches {
			m := xm.toMatch()
			addPlayer(m.Player1)
			addPlayer(m.Player2)
			round.Matches = append(round.Matches, m)
		}
		rounds = append(rounds, round)
	}

	return swiss.NewSnapshot(players, rounds)
}

func (xm xmlMatch) toMatch() swiss.Match {
	m := swiss.Match{
		Player1: strings.TrimSpace(xm.Player1.UserID),
		Player2: strings.TrimSpace(xm.Player2.UserID),
		Outcome: parseOutcome(xm.Outcome),
	}
	if m.Player1 == "" {
		// byes name their single participant with <player>
		m.Player1 = strings.TrimSpace(xm.Player.UserID)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(xm.TableNumber)); err == nil {
		m.Table = n
	}
	return m
}

// parseOutcome maps the outcome attribute; an unparsable code becomes an
// out-of-range outcome which the snapshot drops with a warning.
func parseOutcome(s string) swiss.Outcome {
	s = strings.TrimSpace(s)
	if s == "" {
		return swiss.OutcomeUnreported
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return swiss.Outcome(-1)
	}
	return swiss.Outcome(n)
}

func podDivision(category string) swiss.Division {
	switch strings.TrimSpace(category) {
	case "0":
		return swiss.DivisionJunior
	case "1":
		return swiss.DivisionSenior
	case "2":
		return swiss.DivisionMasters
	}
	if d, err := swiss.ParseDivision(category); err == nil {
		return d
	}
	return swiss.DivisionUnknown
}

func logWarning(w swiss.Warning) {
	log.Printf("tdf.parse: warning: %v", w)
}
