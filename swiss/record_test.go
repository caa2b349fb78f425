/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

func TestRecordAsOf(t *testing.T) {
	snap := NewSnapshot(testPlayers("P", "A", "B", "C", "D"), []Round{
		swissRound(1, match(1, "P", "A", OutcomePlayer1Win)),
		swissRound(2, match(1, "B", "P", OutcomePlayer1Win)),
		swissRound(3, match(1, "C", "P", OutcomePlayer2Win)),
		swissRound(4,
			match(1, "P", "D", OutcomeUnreported),
			match(2, "A", "B", OutcomeDoubleLoss),
			match(3, "C", "P", OutcomeTie)),
		elimRound(5, match(1, "P", "B", OutcomePlayer1Win)),
	})

	cases := []struct {
		name   string
		id     string
		cutoff Cutoff
		swiss  bool
		want   Record
	}{
		{
			name:   "two wins one loss",
			id:     "P",
			cutoff: Through(3),
			want:   Record{Wins: 2, Losses: 1, MatchPoints: 6, RoundsPlayed: 3, HighestRound: 3},
		},
		{
			name:   "entering round 3",
			id:     "P",
			cutoff: Before(3),
			want:   Record{Wins: 1, Losses: 1, MatchPoints: 3, RoundsPlayed: 2, HighestRound: 2},
		},
		{
			name:   "unreported match counts nothing",
			id:     "D",
			cutoff: Through(4),
			want:   Record{HighestRound: 4},
		},
		{
			name:   "double loss",
			id:     "A",
			cutoff: Through(4),
			want:   Record{Losses: 2, RoundsPlayed: 2, HighestRound: 4},
		},
		{
			name:   "all kinds includes top cut",
			id:     "P",
			cutoff: AllRounds(),
			want:   Record{Wins: 3, Losses: 1, Ties: 1, MatchPoints: 10, RoundsPlayed: 5, HighestRound: 5},
		},
		{
			name:   "swiss only excludes top cut",
			id:     "P",
			cutoff: AllRounds(),
			swiss:  true,
			want:   Record{Wins: 2, Losses: 1, Ties: 1, MatchPoints: 7, RoundsPlayed: 4, HighestRound: 4},
		},
		{
			name:   "empty id",
			id:     "",
			cutoff: AllRounds(),
			want:   Record{},
		},
		{
			name:   "unknown id",
			id:     "nobody",
			cutoff: AllRounds(),
			want:   Record{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got Record
			if c.swiss {
				got = snap.SwissRecordAsOf(c.id, c.cutoff)
			} else {
				got = snap.RecordAsOf(c.id, c.cutoff)
			}
			if got != c.want {
				t.Errorf("%s: got %+v; want %+v", c.name, got, c.want)
			}
		})
	}
}

func TestRecordByeIsWin(t *testing.T) {
	snap := NewSnapshot(testPlayers("A", "B"), []Round{
		swissRound(1, bye("A"), bye("B")),
		swissRound(2, match(1, "A", "B", OutcomePlayer1Win)),
	})
	rec := snap.RecordAsOf("A", AllRounds())
	want := Record{Wins: 2, Byes: 1, MatchPoints: 6, RoundsPlayed: 2, HighestRound: 2}
	if rec != want {
		t.Errorf("got %+v; want %+v", rec, want)
	}
	if rec.String() != "2-0-0" {
		t.Errorf("expected 2-0-0, got %v", rec.String())
	}
	if opps := snap.OpponentsOf("A", AllRounds()); len(opps) != 1 || opps[0] != "B" {
		t.Errorf("bye must not add an opponent, got %v", opps)
	}
}

func TestCutoff(t *testing.T) {
	if !Through(3).Includes(3) || Before(3).Includes(3) {
		t.Errorf("inclusive/exclusive cutoff mismatch")
	}
	if !Before(3).Includes(2) || Through(3).Includes(4) {
		t.Errorf("cutoff bounds mismatch")
	}
	if AllRounds().String() != "all rounds" || Before(2).String() != "before round 2" {
		t.Errorf("unexpected cutoff strings %v %v", AllRounds(), Before(2))
	}
}
