// Package metrics exposes the server's Prometheus instrumentation: active
// room/match gauges, per-action counters, and the /metrics HTTP handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voltrace",
		Name:      "rooms_active",
		Help:      "Number of rooms currently tracked by the room manager.",
	})

	MatchesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voltrace",
		Name:      "matches_started_total",
		Help:      "Total number of matches transitioned into play.",
	})

	MatchesEnded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voltrace",
		Name:      "matches_ended_total",
		Help:      "Total number of matches that reached game_terminated.",
	})

	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voltrace",
		Name:      "gateway_actions_total",
		Help:      "Inbound gateway actions processed, labeled by action type and outcome.",
	}, []string{"action", "outcome"})

	TurnTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voltrace",
		Name:      "turn_timeouts_total",
		Help:      "Total number of turns force-resolved by the 90-second inactivity timer.",
	})
)

func init() {
	prometheus.MustRegister(RoomsActive, MatchesStarted, MatchesEnded, ActionsTotal, TurnTimeouts)
}

// Handler returns the HTTP handler to mount at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
