/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

const (
	StageSwiss   = "Swiss"
	StageFinals  = "Finals"
	StageTop4    = "Top 4"
	StageTop8    = "Top 8"
	StageTop16   = "Top 16"
	StageTopCut  = "Top Cut"
	byeSeatLabel = "BYE"
)

// StageLabel names the stage a round belongs to. Elimination rounds are
// labelled by their match count; labels are for display only.
func StageLabel(kind RoundKind, matchCount int) string {
	if kind == KindSwiss {
		return StageSwiss
	}
	switch matchCount {
	case 1:
		return StageFinals
	case 2:
		return StageTop4
	case 4:
		return StageTop8
	case 8:
		return StageTop16
	default:
		return StageTopCut
	}
}

// RoundLabel is the heading used when displaying a single round.
func RoundLabel(r Round) string {
	if r.Kind == KindSwiss {
		return fmt.Sprintf("Round %d", r.Number)
	}
	return fmt.Sprintf("%s (Round %d)", StageLabel(r.Kind, len(r.Matches)),
		r.Number)
}

// Stage groups consecutive rounds sharing a stage label.
type Stage struct {
	Name   string
	Rounds []int
}

// Stages groups the snapshot's rounds by stage in round order.
func (s *Snapshot) Stages() []Stage {
	var stages []Stage
	for _, r := range s.rounds {
		name := StageLabel(r.Kind, len(r.Matches))
		if n := len(stages); n > 0 && stages[n-1].Name == name {
			stages[n-1].Rounds = append(stages[n-1].Rounds, r.Number)
			continue
		}
		stages = append(stages, Stage{Name: name, Rounds: []int{r.Number}})
	}
	return stages
}

// Seat is one side of a pairing together with the record the player carried
// into the round.
type Seat struct {
	ID     string
	Name   string
	Record Record
}

type Pairing struct {
	Table   int
	Player1 Seat
	// Player2 is the zero Seat for a bye
	Player2 Seat
	Outcome Outcome
	IsBye   bool
}

// ResultString renders the outcome from player1's side.
func (p Pairing) ResultString() string {
	if p.IsBye {
		return byeSeatLabel
	}
	switch p.Outcome {
	case OutcomePlayer1Win:
		return "W-L"
	case OutcomePlayer2Win:
		return "L-W"
	case OutcomeTie:
		return "T-T"
	case OutcomeDoubleLoss:
		return "L-L"
	default:
		return ""
	}
}

// RoundPairings is the read-only projection the pairing display consumes.
type RoundPairings struct {
	Number   int
	Kind     RoundKind
	Label    string
	Complete bool
	Pairings []Pairing
}

// RoundPairings returns round number's matches in display order, each seat
// annotated with the player's record entering the round.
func (s *Snapshot) RoundPairings(number int) (RoundPairings, bool) {
	r, ok := s.Round(number)
	if !ok {
		return RoundPairings{}, false
	}

	cutoff := Before(number)
	records := make(map[string]Record)
	seat := func(id string) Seat {
		if id == "" {
			return Seat{}
		}
		rec, ok := records[id]
		if !ok {
			rec = s.RecordAsOf(id, cutoff)
			records[id] = rec
		}
		return Seat{ID: id, Name: s.PlayerName(id), Record: rec}
	}

	out := RoundPairings{
		Number:   r.Number,
		Kind:     r.Kind,
		Label:    RoundLabel(r),
		Complete: r.IsComplete(),
		Pairings: make([]Pairing, 0, len(r.Matches)),
	}
	for _, m := range r.Matches {
		out.Pairings = append(out.Pairings, Pairing{
			Table:   m.Table,
			Player1: seat(m.Player1),
			Player2: seat(m.Player2),
			Outcome: m.Outcome,
			IsBye:   m.IsBye(),
		})
	}

	return out, true
}
