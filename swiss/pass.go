/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math/big"
	"strings"
)

// Pass is the memoization context for a single standings computation over
// one snapshot and one cutoff. A Pass must not be reused across snapshots;
// create a new one for every computation.
//
// Percentages are kept as exact fractions so that values which are equal
// compare equal no matter the order opponents were faced in; float64 is only
// produced for display.
type Pass struct {
	snap   *Snapshot
	cfg    Config
	cutoff Cutoff
	graph  *OpponentGraph
	floor  *big.Rat

	records map[string]Record
	wp      map[string]*big.Rat
	owp     map[string]*big.Rat
	oowp    map[string]*big.Rat
}

var ratOne = big.NewRat(1, 1)

func (s *Snapshot) NewPass(cfg Config, cutoff Cutoff) *Pass {
	return &Pass{
		snap:    s,
		cfg:     cfg,
		cutoff:  cutoff,
		graph:   s.OpponentGraph(cutoff),
		floor:   new(big.Rat).SetFloat64(cfg.WinFloor),
		records: make(map[string]Record),
		wp:      make(map[string]*big.Rat),
		owp:     make(map[string]*big.Rat),
		oowp:    make(map[string]*big.Rat),
	}
}

func (p *Pass) Cutoff() Cutoff {
	return p.cutoff
}

func (p *Pass) Graph() *OpponentGraph {
	return p.graph
}

// Record returns id's Swiss record for the pass cutoff.
func (p *Pass) Record(id string) Record {
	if rec, ok := p.records[id]; ok {
		return rec
	}
	rec := p.snap.SwissRecordAsOf(id, p.cutoff)
	p.records[id] = rec
	return rec
}

// WinPercentage is match points over the maximum obtainable points across the
// Swiss rounds played, clamped to the configured floor. A player who has not
// played yields the floor.
func (p *Pass) WinPercentage(id string) float64 {
	return ratFloat(p.winRat(id))
}

// OWP is the mean win percentage of id's distinct Swiss opponents.
func (p *Pass) OWP(id string) float64 {
	return ratFloat(p.owpRat(id))
}

// OOWP is the mean over id's distinct opponents of each opponent's own OWP.
// Grand-opponents reachable through several opponents are counted once per
// path.
func (p *Pass) OOWP(id string) float64 {
	return ratFloat(p.oowpRat(id))
}

func (p *Pass) winRat(id string) *big.Rat {
	if v, ok := p.wp[id]; ok {
		return v
	}
	rec := p.Record(id)
	v := p.floor
	if rec.RoundsPlayed > 0 {
		v = p.clamp(big.NewRat(int64(rec.MatchPoints),
			int64(rec.RoundsPlayed*PointsWin)))
	}
	p.wp[id] = v
	return v
}

func (p *Pass) owpRat(id string) *big.Rat {
	if v, ok := p.owp[id]; ok {
		return v
	}
	v := p.mean(p.graph.OpponentsOf(id), p.winRat)
	p.owp[id] = v
	return v
}

func (p *Pass) oowpRat(id string) *big.Rat {
	if v, ok := p.oowp[id]; ok {
		return v
	}
	v := p.mean(p.graph.OpponentsOf(id), p.owpRat)
	p.oowp[id] = v
	return v
}

func (p *Pass) mean(ids []string, f func(string) *big.Rat) *big.Rat {
	if len(ids) == 0 {
		return p.floor
	}
	sum := new(big.Rat)
	for _, id := range ids {
		sum.Add(sum, f(id))
	}
	sum.Quo(sum, big.NewRat(int64(len(ids)), 1))
	return p.clamp(sum)
}

func (p *Pass) clamp(v *big.Rat) *big.Rat {
	if v.Cmp(p.floor) < 0 {
		return p.floor
	}
	if v.Cmp(ratOne) > 0 {
		return ratOne
	}
	return v
}

// compareRows orders rows by match points, OWP and OOWP, all descending,
// then by ascending player id. Percentages are compared exactly.
func (p *Pass) compareRows(a, b Row) int {
	if a.Record.MatchPoints != b.Record.MatchPoints {
		if a.Record.MatchPoints > b.Record.MatchPoints {
			return -1
		}
		return 1
	}
	if c := p.owpRat(b.Player.ID).Cmp(p.owpRat(a.Player.ID)); c != 0 {
		return c
	}
	if c := p.oowpRat(b.Player.ID).Cmp(p.oowpRat(a.Player.ID)); c != 0 {
		return c
	}
	return strings.Compare(a.Player.ID, b.Player.ID)
}

func ratFloat(v *big.Rat) float64 {
	f, _ := v.Float64()
	return f
}

// WinPercentage computes id's win percentage without sharing a memo.
func (s *Snapshot) WinPercentage(cfg Config, id string, cutoff Cutoff) float64 {
	return s.NewPass(cfg, cutoff).WinPercentage(id)
}

func (s *Snapshot) OWP(cfg Config, id string, cutoff Cutoff) float64 {
	return s.NewPass(cfg, cutoff).OWP(id)
}

func (s *Snapshot) OOWP(cfg Config, id string, cutoff Cutoff) float64 {
	return s.NewPass(cfg, cutoff).OOWP(id)
}
