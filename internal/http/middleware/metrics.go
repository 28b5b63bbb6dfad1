package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	MatchesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_started_total",
			Help: "Total matches that became active",
		},
	)
	RevealsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reveals_submitted_total",
			Help: "Total accepted reveals",
		},
	)
	RoundsSettled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rounds_settled_total",
			Help: "Total rounds scored",
		},
	)
	MatchesFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_finished_total",
			Help: "Total matches paid out",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(MatchesStarted)
	prometheus.MustRegister(RevealsSubmitted)
	prometheus.MustRegister(RoundsSettled)
	prometheus.MustRegister(MatchesFinished)
}
