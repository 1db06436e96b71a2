// Package metrics defines the engine's Prometheus collectors. They are
// registered by the metrics server and incremented from the sync loop and
// the achievement engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SyncPassesTotal counts completed sync passes, labelled by mode
	// (full or incremental).
	SyncPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lycanstats_sync_passes_total",
			Help: "Total number of completed sync passes",
		},
		[]string{"mode"},
	)

	// GamesIngestedTotal counts game records absorbed from the sync directory.
	GamesIngestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lycanstats_games_ingested_total",
			Help: "Total number of game records ingested",
		},
	)

	// MalformedRecordsTotal counts records skipped during ingestion.
	MalformedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lycanstats_malformed_records_total",
			Help: "Total number of malformed game records skipped",
		},
	)

	// EvaluatorWarningsTotal counts per-player evaluator configuration
	// warnings (unknown evaluator name, clamped value).
	EvaluatorWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lycanstats_evaluator_warnings_total",
			Help: "Total number of evaluator configuration warnings",
		},
		[]string{"reason"},
	)

	// GamesAnalyzed is the size of the ordered game log after the latest pass.
	GamesAnalyzed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lycanstats_games_analyzed",
			Help: "Number of games in the analyzed log",
		},
	)

	// PlayersTracked is the number of distinct players after the latest pass.
	PlayersTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lycanstats_players_tracked",
			Help: "Number of distinct players tracked",
		},
	)
)

// Collectors returns every engine collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		SyncPassesTotal,
		GamesIngestedTotal,
		MalformedRecordsTotal,
		EvaluatorWarningsTotal,
		GamesAnalyzed,
		PlayersTracked,
	}
}
