// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// UsersRegisteredTotal counts successfully created accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts reset-token lifecycle events.
// Label:
//   - stage: "requested" (token issued and mailed) or "completed"
//     (token consumed and password changed)
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password-reset events, labelled by stage.",
	},
	[]string{"stage"},
)

// MediaUploadsTotal counts objects pushed to the storage service.
// Label:
//   - kind: "avatar", "poster" or "video"
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of media objects uploaded, labelled by kind.",
	},
	[]string{"kind"},
)

// MediaDeleteFailuresTotal counts storage deletes that failed after the
// owning document mutation already succeeded. Each increment is a stale
// object left in the storage service.
var MediaDeleteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_delete_failures_total",
		Help:      "Total number of failed media deletions, labelled by kind.",
	},
	[]string{"kind"},
)
