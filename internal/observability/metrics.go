package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fitchallenge"

var (
	usersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "identity",
		Name:      "users_created_total",
		Help:      "Users created implicitly for new sessions.",
	})
	challengesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "challenges",
		Name:      "created_total",
		Help:      "Challenges persisted.",
	})
	sharesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "shares",
		Name:      "created_total",
		Help:      "Share links recorded.",
	})
	sharesResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "shares",
		Name:      "resolved_total",
		Help:      "Share link lookups by outcome (catalog, share, missing).",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(usersCreated, challengesCreated, sharesCreated, sharesResolved)
}

func RecordUserCreated()      { usersCreated.Inc() }
func RecordChallengeCreated() { challengesCreated.Inc() }
func RecordShareCreated()     { sharesCreated.Inc() }

// RecordShareResolved counts a /s/{key} lookup. outcome is one of
// "catalog", "share" or "missing".
func RecordShareResolved(outcome string) {
	sharesResolved.WithLabelValues(outcome).Inc()
}
