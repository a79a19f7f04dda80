// Package metrics exposes the engine's Prometheus instruments. Everything
// is registered through promauto on the default registry, so importing the
// package is all the setup a binary needs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsAppended counts mutation commands written to the durable log,
	// labeled by command kind.
	CommandsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravl_commands_appended_total",
			Help: "Total number of commands appended to the log",
		},
		[]string{"kind"},
	)

	// LogReplays counts full log replays into a fresh snapshot.
	LogReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gravl_log_replays_total",
			Help: "Total number of full log replays",
		},
	)

	// ReplayedCommands tracks the log length observed by the last replay,
	// a proxy for how much compaction would save.
	ReplayedCommands = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gravl_replayed_commands",
			Help: "Number of commands replayed by the most recent build",
		},
	)

	// SearchExpansions counts search state expansions, labeled by query
	// kind (path, cycle, girth, hamiltonian). The main cost indicator for
	// constrained queries.
	SearchExpansions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravl_search_expansions_total",
			Help: "Total number of search states expanded",
		},
		[]string{"query"},
	)

	// CyclesEmitted counts cycles handed to enumeration consumers.
	CyclesEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gravl_cycles_emitted_total",
			Help: "Total number of cycles emitted by enumeration",
		},
	)

	// QueryDuration measures end-to-end query time, labeled by query kind.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gravl_query_duration_seconds",
			Help:    "Duration of graph queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"query"},
	)
)
