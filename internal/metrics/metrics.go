package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счетчики и датчики движка воспроизведения, отдаются через /metrics
var (
	PhasesAdvanced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replay_phases_advanced_total",
		Help: "Number of phase advances (timer and manual).",
	})

	GamesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replay_games_completed_total",
		Help: "Number of games that reached a confirmed victory.",
	})

	GamesExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replay_archive_exhausted_total",
		Help: "Times the game archive ran out of games.",
	})

	AnimationsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replay_animations_started_total",
		Help: "Number of highlight animations started.",
	})

	ConnectedViewers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "replay_connected_viewers",
		Help: "Currently connected websocket viewers.",
	})
)
