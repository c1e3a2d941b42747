// Package metrics defines and registers all custom Prometheus metrics for the
// ProBooking auth service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "probooking"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - role: the requested role ("professional", "client", "superadmin")
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// LoginFailuresTotal counts failed logins by reason.
// Label:
//   - reason: "validation", "invalid_credentials", "unknown_role",
//     "too_many_attempts", "timeout", "in_progress"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts, by reason.",
	},
	[]string{"reason"},
)

// SessionRestoresTotal counts startup session-restore outcomes.
// Label:
//   - result: "restored" or "none"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restore attempts at startup, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks whether a session is currently published. The slot
// holds at most one session, so the gauge is 0 or 1.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of currently published sessions (at most one).",
	},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of login audit events dropped due to backpressure.",
	},
)
