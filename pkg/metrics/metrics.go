// Package metrics exposes Prometheus instrumentation for the season
// simulator and the feed server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "breakaway"

var registry = prometheus.NewRegistry()

var (
	GamesSimulated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_simulated_total",
		Help:      "Games simulated since process start.",
	})

	GoalsScored = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goals_total",
		Help:      "Goals scored in simulated games, by side.",
	}, []string{"side"})

	PenaltiesCalled = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "penalties_total",
		Help:      "Penalties assessed in simulated games.",
	})

	OvertimeGames = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overtime_games_total",
		Help:      "Simulated games that needed overtime.",
	})

	SimulationSeconds = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_seconds",
		Help:      "Wall-clock duration of one full game simulation.",
		Buckets:   prometheus.DefBuckets,
	})

	FeedClients = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "clients",
		Help:      "Websocket clients currently connected to the feed.",
	})

	FeedEventsSent = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "events_sent_total",
		Help:      "Play-by-play events streamed to feed clients.",
	})
)

// Handler serves the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
