/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math"
	"math/big"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestWinPercentage(t *testing.T) {
	cfg := DefaultConfig()
	snap := NewSnapshot(testPlayers("P", "Q", "A", "B", "C"), []Round{
		swissRound(1, match(1, "P", "A", OutcomePlayer1Win)),
		swissRound(2, match(1, "P", "B", OutcomePlayer2Win)),
		swissRound(3, match(1, "P", "C", OutcomePlayer1Win)),
	})

	if got := snap.WinPercentage(cfg, "P", AllRounds()); !approxEqual(got, 6.0/9.0) {
		t.Errorf("P: expected %v got %v", 6.0/9.0, got)
	}
	// never played: exactly the floor
	if got := snap.WinPercentage(cfg, "Q", AllRounds()); got != cfg.WinFloor {
		t.Errorf("Q: expected floor %v got %v", cfg.WinFloor, got)
	}
	// 0 of 3 points is clamped
	if got := snap.WinPercentage(cfg, "A", AllRounds()); got != cfg.WinFloor {
		t.Errorf("A: expected floor %v got %v", cfg.WinFloor, got)
	}
	if got := snap.WinPercentage(cfg, "B", AllRounds()); got != 1.0 {
		t.Errorf("B: expected 1.0 got %v", got)
	}

	custom := Config{WinFloor: 0.40, SwissRoundType: "3"}
	if got := snap.WinPercentage(custom, "A", AllRounds()); got != 0.40 {
		t.Errorf("A: expected custom floor 0.40 got %v", got)
	}
	// floor applies to the opponent's contribution
	if got := snap.OWP(cfg, "P", AllRounds()); !approxEqual(got, (0.25+1.0+0.25)/3.0) {
		t.Errorf("P OWP: got %v", got)
	}
}

func TestWinPercentageIgnoresTopCut(t *testing.T) {
	cfg := DefaultConfig()
	snap := NewSnapshot(testPlayers("A", "B"), []Round{
		swissRound(1, match(1, "A", "B", OutcomePlayer2Win)),
		elimRound(2, match(1, "A", "B", OutcomePlayer1Win)),
	})
	if got := snap.WinPercentage(cfg, "B", AllRounds()); got != 1.0 {
		t.Errorf("top cut loss must not lower B's win percentage, got %v", got)
	}
	if got := snap.OpponentGraph(AllRounds()).Edges("A"); len(got) != 1 {
		t.Errorf("expected only the swiss edge, got %v", got)
	}
}

func TestOWPAndOOWP(t *testing.T) {
	cfg := DefaultConfig()
	pass := fourPlayerEvent().NewPass(cfg, AllRounds())

	cases := []struct {
		id   string
		wp   float64
		owp  float64
		oowp float64
	}{
		{"A", 1.0, 0.5, 0.625},
		{"B", 0.5, 0.625, 0.5},
		{"C", 0.5, 0.625, 0.5},
		{"D", 0.25, 0.5, 0.625},
	}
	for _, c := range cases {
		if got := pass.WinPercentage(c.id); got != c.wp {
			t.Errorf("%v: WinPercentage = %v; want %v", c.id, got, c.wp)
		}
		if got := pass.OWP(c.id); got != c.owp {
			t.Errorf("%v: OWP = %v; want %v", c.id, got, c.owp)
		}
		// D is A's grand-opponent through both B and C and counts twice
		if got := pass.OOWP(c.id); got != c.oowp {
			t.Errorf("%v: OOWP = %v; want %v", c.id, got, c.oowp)
		}
	}
}

func TestOWPAverages(t *testing.T) {
	snap := NewSnapshot(testPlayers("R", "X", "Y"), []Round{
		swissRound(1, match(1, "R", "X", OutcomeTie)),
		swissRound(2, match(1, "R", "Y", OutcomeTie)),
	})
	pass := snap.NewPass(DefaultConfig(), AllRounds())
	pass.wp["X"] = big.NewRat(60, 100)
	pass.wp["Y"] = big.NewRat(40, 100)
	pass.owp["X"] = big.NewRat(55, 100)
	pass.owp["Y"] = big.NewRat(45, 100)

	if got := pass.OWP("R"); !approxEqual(got, 0.50) {
		t.Errorf("owp(R) = %v; want 0.50", got)
	}
	if got := pass.OOWP("R"); !approxEqual(got, 0.50) {
		t.Errorf("oowp(R) = %v; want 0.50", got)
	}
}

func TestOWPRepeatOpponent(t *testing.T) {
	cfg := DefaultConfig()
	snap := NewSnapshot(testPlayers("A", "B", "C"), []Round{
		swissRound(1, match(1, "A", "B", OutcomePlayer1Win), bye("C")),
		swissRound(2, match(1, "A", "C", OutcomePlayer1Win), bye("B")),
		swissRound(3, match(1, "A", "B", OutcomePlayer1Win), bye("C")),
	})
	g := snap.OpponentGraph(AllRounds())
	if n := len(g.Edges("A")); n != 3 {
		t.Errorf("expected 3 edges for A, got %d", n)
	}
	opps := g.OpponentsOf("A")
	if len(opps) != 2 || opps[0] != "B" || opps[1] != "C" {
		t.Fatalf("expected [B C], got %v", opps)
	}
	pass := snap.NewPass(cfg, AllRounds())
	want := (pass.WinPercentage("B") + pass.WinPercentage("C")) / 2.0
	if got := pass.OWP("A"); !approxEqual(got, want) {
		t.Errorf("owp(A) = %v; want %v", got, want)
	}
	if got := pass.OWP("nobody"); got != cfg.WinFloor {
		t.Errorf("empty opponent set must yield the floor, got %v", got)
	}
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.KindOf("3") != KindSwiss || cfg.KindOf(" 3 ") != KindSwiss ||
		cfg.KindOf("1") != KindElimination {
		t.Errorf("unexpected round classification")
	}
	for _, bad := range []Config{{WinFloor: -0.1, SwissRoundType: "3"},
		{WinFloor: 1.5, SwissRoundType: "3"}, {WinFloor: math.NaN(), SwissRoundType: "3"},
		{WinFloor: 0.25}} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected %+v to be invalid", bad)
		}
	}
}
