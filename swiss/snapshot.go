/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Snapshot is the normalized, read-only view of one dataset load. It is
// rebuilt wholesale on every load and never patched; everything derived from
// it is a pure function of the snapshot and a round cutoff.
type Snapshot struct {
	players  []Player
	index    map[string]int
	rounds   []Round
	warnings []Warning
}

// NewSnapshot normalizes players and rounds into a Snapshot. Problems with
// individual records are recorded as warnings and the offending record is
// skipped or degraded so that the rest of the dataset remains usable.
func NewSnapshot(players []Player, rounds []Round) *Snapshot {
	s := &Snapshot{
		index: make(map[string]int, len(players)),
	}

	for _, p := range players {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			s.warn(0, 0, fmt.Sprintf("skipping player %q with empty id",
				p.DisplayName()))
			continue
		}
		if _, ok := s.index[p.ID]; ok {
			s.warn(0, 0, fmt.Sprintf("skipping duplicate player id %v", p.ID))
			continue
		}
		p.placeholder = false
		s.index[p.ID] = len(s.players)
		s.players = append(s.players, p)
	}

	seen := make(map[int]bool)
	for _, r := range rounds {
		if r.Number <= 0 {
			s.warn(0, 0, fmt.Sprintf("skipping round with invalid number %v",
				r.Number))
			continue
		}
		if seen[r.Number] {
			s.warn(r.Number, 0, "skipping duplicate round")
			continue
		}
		seen[r.Number] = true
		s.rounds = append(s.rounds, s.normalizeRound(r))
	}
	sort.Slice(s.rounds, func(i, j int) bool {
		return s.rounds[i].Number < s.rounds[j].Number
	})

	return s
}

func (s *Snapshot) normalizeRound(r Round) Round {
	out := Round{
		Number:  r.Number,
		Kind:    r.Kind,
		Matches: make([]Match, 0, len(r.Matches)),
	}

	for _, m := range r.Matches {
		m.Player1 = strings.TrimSpace(m.Player1)
		m.Player2 = strings.TrimSpace(m.Player2)

		if !m.Outcome.Valid() {
			s.warn(r.Number, m.Table, fmt.Sprintf("skipping match with unknown outcome %d",
				int(m.Outcome)))
			continue
		}
		if m.Player1 == "" {
			s.warn(r.Number, m.Table, "skipping match without player1")
			continue
		}
		if m.Player1 == m.Player2 {
			s.warn(r.Number, m.Table, fmt.Sprintf("skipping match of %v against itself",
				m.Player1))
			continue
		}
		if m.Outcome == OutcomeBye && m.Player2 != "" {
			s.warn(r.Number, m.Table, fmt.Sprintf("bye with two players; ignoring %v",
				m.Player2))
			m.Player2 = ""
		}
		if m.Player2 == "" {
			m.Outcome = OutcomeBye
		}

		s.ensurePlayer(m.Player1, r.Number, m.Table)
		if m.Player2 != "" {
			s.ensurePlayer(m.Player2, r.Number, m.Table)
		}
		out.Matches = append(out.Matches, m)
	}

	// display order only; scoring never depends on it
	sort.SliceStable(out.Matches, func(i, j int) bool {
		return tableLess(out.Matches[i].Table, out.Matches[j].Table)
	})

	return out
}

// tableLess orders by ascending table number with table 0 (bye) last.
func tableLess(a, b int) bool {
	if a == 0 || b == 0 {
		return a != 0 && b == 0
	}
	return a < b
}

// ensurePlayer registers a placeholder for a match reference that has no
// registered player so that counts stay consistent.
func (s *Snapshot) ensurePlayer(id string, round int, table int) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.warn(round, table, fmt.Sprintf("unknown player %v", id))
	s.index[id] = len(s.players)
	s.players = append(s.players, Player{ID: id, placeholder: true})
}

func (s *Snapshot) warn(round int, table int, msg string) {
	w := Warning{Round: round, Table: table, Msg: msg}
	log.Printf("swiss.snapshot: warning: %v", w)
	s.warnings = append(s.warnings, w)
}

// Players returns every player in enumeration order: registered players in
// load order followed by placeholders in order of first reference.
func (s *Snapshot) Players() []Player {
	return append([]Player(nil), s.players...)
}

func (s *Snapshot) Player(id string) (Player, bool) {
	idx, ok := s.index[id]
	if !ok {
		return Player{}, false
	}
	return s.players[idx], true
}

// PlayerName returns the display name of id, falling back to a placeholder
// name for unknown ids.
func (s *Snapshot) PlayerName(id string) string {
	p, ok := s.Player(id)
	if !ok {
		p = Player{ID: id, placeholder: true}
	}
	return p.DisplayName()
}

// Rounds returns all rounds in ascending round number order.
func (s *Snapshot) Rounds() []Round {
	return append([]Round(nil), s.rounds...)
}

func (s *Snapshot) Round(number int) (Round, bool) {
	idx := sort.Search(len(s.rounds), func(i int) bool {
		return s.rounds[i].Number >= number
	})
	if idx < len(s.rounds) && s.rounds[idx].Number == number {
		return s.rounds[idx], true
	}
	return Round{}, false
}

func (s *Snapshot) SwissRounds() []Round {
	var out []Round
	for _, r := range s.rounds {
		if r.Kind == KindSwiss {
			out = append(out, r)
		}
	}
	return out
}

// FinalSwissRound returns the highest numbered Swiss round in the dataset.
func (s *Snapshot) FinalSwissRound() (Round, bool) {
	for i := len(s.rounds) - 1; i >= 0; i-- {
		if s.rounds[i].Kind == KindSwiss {
			return s.rounds[i], true
		}
	}
	return Round{}, false
}

func (s *Snapshot) Warnings() []Warning {
	return append([]Warning(nil), s.warnings...)
}
