// Package metrics provides Prometheus metrics for Vita — counters, gauges,
// and histograms for activity ingestion, achievement evaluation, and
// persistence.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activity ───────────────────────────────────────────────────────────────

// EventsIngested tracks accepted activity events by domain.
var EventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vita",
	Name:      "events_ingested_total",
	Help:      "Total activity events accepted, by domain.",
}, []string{"domain"})

// EventsRejected tracks events rejected at the ingestion boundary.
var EventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vita",
	Name:      "events_rejected_total",
	Help:      "Total activity events rejected at the ingestion boundary.",
}, []string{"domain"})

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementsUnlocked tracks unlock transitions by rarity.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vita",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked, by rarity.",
}, []string{"rarity"})

// AchievementsUnlockedCurrent tracks the current unlocked count.
var AchievementsUnlockedCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "vita",
	Name:      "achievements_unlocked_current",
	Help:      "Number of currently unlocked achievements.",
})

// EvaluationDuration tracks one ingest→evaluate pass over the catalog.
var EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "vita",
	Name:      "evaluation_duration_seconds",
	Help:      "Duration of one catalog evaluation pass.",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
})

// ─── Persistence ────────────────────────────────────────────────────────────

// StateSaves tracks achievement-state save attempts by outcome.
var StateSaves = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vita",
	Name:      "state_saves_total",
	Help:      "Achievement state save attempts, by outcome.",
}, []string{"outcome"})
