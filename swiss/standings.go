/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "slices"

// Phase is the display gating state of a snapshot.
type Phase int

const (
	PhaseNoData Phase = iota
	PhasePartialSwiss
	PhaseSwissComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseNoData:
		return "no data"
	case PhasePartialSwiss:
		return "swiss in progress"
	case PhaseSwissComplete:
		return "swiss complete"
	default:
		return "?"
	}
}

// Row is one line of a standings table. Rows are derived on demand and carry
// no identity of their own.
type Row struct {
	Place  int
	Player Player
	Record Record
	WinPct float64
	OWP    float64
	OOWP   float64
}

// Standings is the gated result of a standings request. Rows is nil unless
// Phase is PhaseSwissComplete.
type Standings struct {
	Phase Phase
	// Round is the final Swiss round the rows were computed through
	Round int
	Rows  []Row
}

func (st Standings) Available() bool {
	return st.Phase == PhaseSwissComplete
}

// Phase evaluates the snapshot from scratch: standings become available only
// once every match of the highest numbered Swiss round has a result.
func (s *Snapshot) Phase() Phase {
	paired := false
	for _, r := range s.rounds {
		if r.Kind == KindSwiss && len(r.Matches) > 0 {
			paired = true
			break
		}
	}
	if len(s.players) == 0 || !paired {
		return PhaseNoData
	}
	final, _ := s.FinalSwissRound()
	if !final.IsComplete() {
		return PhasePartialSwiss
	}
	return PhaseSwissComplete
}

// Standings returns the published standings table, or only the phase when
// the Swiss portion is not yet complete.
func (s *Snapshot) Standings(cfg Config) Standings {
	st := Standings{Phase: s.Phase()}
	if st.Phase != PhaseSwissComplete {
		return st
	}
	final, _ := s.FinalSwissRound()
	st.Round = final.Number
	st.Rows = s.Rank(cfg, Through(final.Number))
	return st
}

// Rank builds and orders a row for every player paired in at least one Swiss
// round selected by cutoff, without any gating. Rows are ordered by match
// points, OWP and OOWP, all descending, then by ascending player id; ties
// in OWP and OOWP are judged on exact values.
func (s *Snapshot) Rank(cfg Config, cutoff Cutoff) []Row {
	pass := s.NewPass(cfg, cutoff)

	rows := make([]Row, 0, len(s.players))
	for _, p := range s.players {
		rec := pass.Record(p.ID)
		if rec.HighestRound == 0 {
			continue
		}
		rows = append(rows, Row{
			Player: p,
			Record: rec,
			WinPct: pass.WinPercentage(p.ID),
			OWP:    pass.OWP(p.ID),
			OOWP:   pass.OOWP(p.ID),
		})
	}

	slices.SortStableFunc(rows, pass.compareRows)
	for idx := range rows {
		rows[idx].Place = idx + 1
	}

	return rows
}

// PlayerDetail is a single player's standing along with the opponents that
// feed their OWP.
type PlayerDetail struct {
	Row       Row
	Opponents []Row
}

// PlayerDetail looks up id within the ranking for cutoff.
func (s *Snapshot) PlayerDetail(cfg Config, id string,
	cutoff Cutoff) (PlayerDetail, bool) {

	rows := s.Rank(cfg, cutoff)
	byID := make(map[string]Row, len(rows))
	for _, r := range rows {
		byID[r.Player.ID] = r
	}
	row, ok := byID[id]
	if !ok {
		return PlayerDetail{}, false
	}

	detail := PlayerDetail{Row: row}
	for _, opp := range s.OpponentsOf(id, cutoff) {
		if r, ok := byID[opp]; ok {
			detail.Opponents = append(detail.Opponents, r)
		}
	}
	return detail, true
}
