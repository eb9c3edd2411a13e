// Package metrics defines the custom Prometheus metrics of the booking API.
// All vectors are registered with the default registry on package init via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "bad_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts sign-up outcomes.
// Label:
//   - result: "created", "email_taken" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by outcome.",
	},
	[]string{"result"},
)

// IdentityResolutionsTotal counts what the request identity filter decided.
// Label:
//   - result: "anonymous", "invalid_token", "unknown_principal", "load_failed" or "authenticated"
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of requests processed by the identity filter, by outcome.",
	},
	[]string{"result"},
)

// ── Roster ────────────────────────────────────────────────────────────────────

// RosterOperationsTotal counts join/leave calls.
// Labels:
//   - operation: "join" or "leave"
//   - result: "ok", "noop", "not_found", "conflict" or "error"
var RosterOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_operations_total",
		Help:      "Total number of roster mutations, by operation and outcome.",
	},
	[]string{"operation", "result"},
)

// RosterRetriesTotal counts read-modify-write attempts lost to a concurrent writer.
var RosterRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_cas_retries_total",
		Help:      "Total number of roster mutations retried after a version conflict.",
	},
	[]string{"operation"},
)

// RosterLockWaitSeconds measures how long a roster mutation waited for the per-session lock.
var RosterLockWaitSeconds = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "roster_lock_wait_seconds",
		Help:      "Time spent acquiring the per-session roster lock.",
		Buckets:   prometheus.DefBuckets,
	},
)
