/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"math"
)

const (
	PointsWin  = 3
	PointsTie  = 1
	PointsLoss = 0
)

// Cutoff selects the rounds a computation considers. Inclusive cutoffs are
// used for final standings ("as of now"); exclusive cutoffs for the record a
// player carries into a round.
type Cutoff struct {
	Round     int
	Inclusive bool
}

// Through selects rounds numbered <= round.
func Through(round int) Cutoff {
	return Cutoff{Round: round, Inclusive: true}
}

// Before selects rounds numbered < round.
func Before(round int) Cutoff {
	return Cutoff{Round: round, Inclusive: false}
}

// AllRounds selects every round in the snapshot.
func AllRounds() Cutoff {
	return Through(math.MaxInt)
}

func (c Cutoff) Includes(round int) bool {
	if c.Inclusive {
		return round <= c.Round
	}
	return round < c.Round
}

func (c Cutoff) String() string {
	if c.Round == math.MaxInt {
		return "all rounds"
	}
	if c.Inclusive {
		return fmt.Sprintf("through round %d", c.Round)
	}
	return fmt.Sprintf("before round %d", c.Round)
}

// Record is a player's match record. Byes are counted both in Byes and in
// Wins.
type Record struct {
	Wins         int
	Losses       int
	Ties         int
	Byes         int
	MatchPoints  int
	RoundsPlayed int
	// HighestRound is the highest round number the player was paired in,
	// reported or not
	HighestRound int
}

// String renders the record as wins-losses-ties.
func (r Record) String() string {
	return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
}

// RecordAsOf computes id's record over rounds of any kind selected by cutoff.
// An empty id yields a zero record.
func (s *Snapshot) RecordAsOf(id string, cutoff Cutoff) Record {
	return s.record(id, cutoff, false)
}

// SwissRecordAsOf is RecordAsOf restricted to Swiss rounds. It is the basis
// of win percentage.
func (s *Snapshot) SwissRecordAsOf(id string, cutoff Cutoff) Record {
	return s.record(id, cutoff, true)
}

func (s *Snapshot) record(id string, cutoff Cutoff, swissOnly bool) Record {
	var rec Record
	if id == "" {
		return rec
	}

	for _, r := range s.rounds {
		if !cutoff.Includes(r.Number) {
			break
		}
		if swissOnly && r.Kind != KindSwiss {
			continue
		}
		played := false
		for _, m := range r.Matches {
			if !m.Involves(id) {
				continue
			}
			rec.HighestRound = r.Number
			if applyMatch(&rec, m, id) {
				played = true
			}
		}
		if played {
			rec.RoundsPlayed++
		}
	}
	rec.MatchPoints = rec.Wins*PointsWin + rec.Ties*PointsTie +
		rec.Losses*PointsLoss

	return rec
}

// applyMatch folds one match into rec from id's point of view and reports
// whether the match had a result.
func applyMatch(rec *Record, m Match, id string) bool {
	if m.IsBye() {
		rec.Wins++
		rec.Byes++
		return true
	}

	switch m.Outcome {
	case OutcomePlayer1Win:
		if m.Player1 == id {
			rec.Wins++
		} else {
			rec.Losses++
		}
	case OutcomePlayer2Win:
		if m.Player2 == id {
			rec.Wins++
		} else {
			rec.Losses++
		}
	case OutcomeTie:
		rec.Ties++
	case OutcomeDoubleLoss:
		rec.Losses++
	default:
		// not yet played
		return false
	}
	return true
}
