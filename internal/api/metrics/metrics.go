// Package metrics defines and registers all custom Prometheus metrics for
// the wallet API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallet"

// LoginsTotal counts successful logins (token pairs issued).
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	},
)

// LoginFailuresTotal counts rejected logins.
// Label:
//   - reason: "not_found" (unknown email) or "bad_password"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of rejected login attempts, by reason.",
	},
	[]string{"reason"},
)

// RegistrationsTotal counts created identities.
// Label:
//   - role: "Regular" or "Admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of identities created, by role.",
	},
	[]string{"role"},
)

// TokenRefreshTotal counts transparent access-token renewals performed by
// the verifier on the expired-access path.
var TokenRefreshTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access tokens transparently renewed.",
	},
)

// AuthDeniedTotal counts authorization denials.
// Label:
//   - capability: "Simple", "User", "Admin", or "Group"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of denied authorization checks, by capability.",
	},
	[]string{"capability"},
)
