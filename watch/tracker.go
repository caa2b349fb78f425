/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package watch owns the most recent event snapshot and the reports derived
// from it. Each new snapshot starts a new generation; computations for an
// older generation are cancelled and their results discarded.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikeb26/swiss-standings/swiss"
	"github.com/mikeb26/swiss-standings/tdf"
	"golang.org/x/sync/errgroup"
)

var ErrStale = errors.New("snapshot superseded by a newer generation")

// Report is everything derived from one division's snapshot.
type Report struct {
	Division  swiss.Division
	Snapshot  *swiss.Snapshot
	Standings swiss.Standings
	// Latest holds the pairings of the highest numbered round
	Latest swiss.RoundPairings
	Stages []swiss.Stage
}

type Result struct {
	Generation uint64
	Event      *tdf.Event
	Reports    map[swiss.Division]Report
	ComputedAt time.Time
}

type Tracker struct {
	cfg     swiss.Config
	metrics *Metrics

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	latest *Result
}

func NewTracker(cfg swiss.Config, metrics *Metrics) *Tracker {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Tracker{cfg: cfg, metrics: metrics}
}

// Update starts a new generation for ev, cancels any computation still
// running for an older generation, and computes every division's report.
// ErrStale is returned when ev is itself superseded before publication.
func (t *Tracker) Update(ctx context.Context, ev *tdf.Event) (*Result, error) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mu.Unlock()
	defer cancel()

	start := time.Now()
	reports, err := t.compute(ctx, ev)
	if err != nil {
		if t.superseded(gen) {
			t.metrics.StaleDiscarded.Inc()
			return nil, ErrStale
		}
		return nil, fmt.Errorf("watch.update: generation %v: %w", gen, err)
	}

	res := &Result{
		Generation: gen,
		Event:      ev,
		Reports:    reports,
		ComputedAt: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		t.metrics.StaleDiscarded.Inc()
		log.Printf("watch.update: discarding generation %v; current is %v", gen, t.gen)
		return nil, ErrStale
	}
	t.latest = res
	t.cancel = nil
	t.metrics.Recomputes.Inc()
	t.metrics.RecomputeTime.Observe(time.Since(start).Seconds())
	t.metrics.Generation.Set(float64(gen))
	for div, rep := range reports {
		t.metrics.IngestWarnings.WithLabelValues(div.String()).
			Set(float64(len(rep.Snapshot.Warnings())))
		t.metrics.DivisionPlayers.WithLabelValues(div.String()).
			Set(float64(len(rep.Standings.Rows)))
	}

	return res, nil
}

func (t *Tracker) compute(ctx context.Context, ev *tdf.Event) (map[swiss.Division]Report,
	error) {

	var mu sync.Mutex
	reports := make(map[swiss.Division]Report, len(ev.Divisions))

	g, gctx := errgroup.WithContext(ctx)
	for div, snap := range ev.Divisions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep := buildReport(t.cfg, div, snap)
			if err := gctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			reports[div] = rep
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func buildReport(cfg swiss.Config, div swiss.Division, snap *swiss.Snapshot) Report {
	rep := Report{
		Division:  div,
		Snapshot:  snap,
		Standings: snap.Standings(cfg),
		Stages:    snap.Stages(),
	}
	if rounds := snap.Rounds(); len(rounds) > 0 {
		rep.Latest, _ = snap.RoundPairings(rounds[len(rounds)-1].Number)
	}
	return rep
}

func (t *Tracker) superseded(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen != t.gen
}

// Latest returns the most recently published result, or nil before the
// first successful Update.
func (t *Tracker) Latest() *Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}

func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}
