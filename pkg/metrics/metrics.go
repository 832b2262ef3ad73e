// Package metrics exposes Prometheus collectors for generation and
// simulation instrumentation, modeled on opd-ai-goldbox-rpg's
// internal/metrics package: the core constructs and updates the
// collectors but never owns an HTTP server or scrape endpoint — a host
// process registers them with its own prometheus.Registerer.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles every metric this module updates.
type Collectors struct {
	GenerationDuration      *prometheus.HistogramVec
	TilesPlaced             *prometheus.CounterVec
	PrefabPlacementOutcomes *prometheus.CounterVec
	SimulationTurns         prometheus.Counter
	CombatEvents            *prometheus.CounterVec
}

// New constructs a fresh Collectors set. Call Register to attach it to a
// prometheus.Registerer before any metric is observed.
func New() *Collectors {
	return &Collectors{
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dunegen",
			Name:      "generation_duration_seconds",
			Help:      "Wall-clock time spent inside a single generator call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"generator"}),
		TilesPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dunegen",
			Name:      "tiles_placed_total",
			Help:      "Tiles placed by feature/prefab placement, by tile name.",
		}, []string{"tile"}),
		PrefabPlacementOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dunegen",
			Name:      "prefab_placement_outcomes_total",
			Help:      "Prefab placement attempts by outcome (placed/failed).",
		}, []string{"outcome"}),
		SimulationTurns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dunegen",
			Name:      "simulation_turns_total",
			Help:      "Total turns processed across all simulations.",
		}),
		CombatEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dunegen",
			Name:      "combat_events_total",
			Help:      "Combat events emitted by kind (move/combat/death/victory).",
		}, []string{"kind"}),
	}
}

// Register attaches every collector to reg. Safe to call once per process
// per Collectors instance.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.GenerationDuration, c.TilesPlaced, c.PrefabPlacementOutcomes,
		c.SimulationTurns, c.CombatEvents,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}
