// Package metrics defines and registers all custom Prometheus metrics for the
// accounts API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// SignupsTotal counts registration attempts.
// Label:
//   - result: "success" or "rejected" (validation failure, duplicate, or store rejection)
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// SigninsTotal counts authentication attempts.
// Label:
//   - result: "success" or "denied"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of authentication attempts, labelled by result.",
	},
	[]string{"result"},
)

// WelcomeMailTotal counts welcome mail deliveries attempted by the dispatcher.
// Label:
//   - result: "sent" or "error"
var WelcomeMailTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "welcome_mail_total",
		Help:      "Total number of welcome mail deliveries, labelled by result.",
	},
	[]string{"result"},
)
