/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikeb26/swiss-standings/tdf"
)

// Loader produces the current event dataset, e.g. by fetching it over HTTP.
type Loader func(ctx context.Context) (*tdf.Event, error)

// Poller reloads a dataset on an interval and feeds changed datasets to a
// Tracker.
type Poller struct {
	tracker  *Tracker
	load     Loader
	interval time.Duration

	lastDigest string
}

func NewPoller(tracker *Tracker, load Loader, interval time.Duration) *Poller {
	return &Poller{
		tracker:  tracker,
		load:     load,
		interval: interval,
	}
}

// Step performs one load. It returns a nil Result without error when the
// dataset is unchanged since the last published generation.
func (p *Poller) Step(ctx context.Context) (*Result, error) {
	ev, err := p.load(ctx)
	if err != nil {
		p.tracker.metrics.FetchErrors.Inc()
		return nil, fmt.Errorf("watch.poll: load failed: %w", err)
	}
	if ev.Digest != "" && ev.Digest == p.lastDigest {
		p.tracker.metrics.Unchanged.Inc()
		return nil, nil
	}

	res, err := p.tracker.Update(ctx, ev)
	if err != nil {
		return nil, err
	}
	p.lastDigest = ev.Digest

	return res, nil
}

// Run calls Step immediately and then once per interval until ctx is done,
// handing each new result to onResult. Load failures are logged and retried
// on the next tick.
func (p *Poller) Run(ctx context.Context, onResult func(*Result)) error {
	if p.interval <= 0 {
		return fmt.Errorf("watch.poll: invalid interval %v", p.interval)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		res, err := p.Step(ctx)
		switch {
		case errors.Is(err, ErrStale):
		case err != nil:
			log.Printf("watch.poll: %v", err)
		case res != nil && onResult != nil:
			onResult(res)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
