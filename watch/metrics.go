/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package watch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "swisstd"

// Metrics are registered on the registry handed to NewMetrics; pass nil to
// keep them unregistered (tests, one-shot CLI runs).
type Metrics struct {
	Recomputes      prometheus.Counter
	StaleDiscarded  prometheus.Counter
	Unchanged       prometheus.Counter
	FetchErrors     prometheus.Counter
	RecomputeTime   prometheus.Histogram
	Generation      prometheus.Gauge
	IngestWarnings  *prometheus.GaugeVec
	DivisionPlayers *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Recomputes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recomputes_total",
			Help:      "Snapshot generations whose reports were computed.",
		}),
		StaleDiscarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stale_discarded_total",
			Help:      "Computations discarded because a newer snapshot arrived.",
		}),
		Unchanged: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unchanged_polls_total",
			Help:      "Polls skipped because the dataset digest did not change.",
		}),
		FetchErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fetch_errors_total",
			Help:      "Polls that failed to load the dataset.",
		}),
		RecomputeTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "recompute_seconds",
			Help:      "Time to compute all division reports for one snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		Generation: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "snapshot_generation",
			Help:      "Generation of the most recently published snapshot.",
		}),
		IngestWarnings: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "ingest_warnings",
			Help:      "Data quality warnings in the published snapshot.",
		}, []string{"division"}),
		DivisionPlayers: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "division_players",
			Help:      "Ranked players per division in the published snapshot.",
		}, []string{"division"}),
	}
}
