// Package metrics defines and registers all custom Prometheus metrics for the
// airhost ops API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init and
// are served by promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airhost"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: the registered echo path (e.g. "/v1/orders/:id")
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests from routing to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Access policy metrics ─────────────────────────────────────────────────────

// AccessDeniedTotal counts requests rejected by the access policy.
// Label:
//   - reason: "unauthorized", "forbidden", "conflict", "invalid_operation" or "no_recipient"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by the access policy, by reason.",
	},
	[]string{"reason"},
)

// ModeSwitchesTotal counts successful persona switches.
// Label:
//   - mode: "UTLEIER" or "TJENESTE"
var ModeSwitchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mode_switches_total",
		Help:      "Total number of active mode switches, by target mode.",
	},
	[]string{"mode"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
// Label:
//   - type: "CLEANING" or "KEY_HANDLING"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by service type.",
	},
	[]string{"type"},
)

// OrderClaimsTotal counts claim attempts.
// Label:
//   - result: "claimed", "conflict" or "rejected"
var OrderClaimsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_claims_total",
		Help:      "Total number of order claim attempts, by result.",
	},
	[]string{"result"},
)

// ── Media & chat metrics ──────────────────────────────────────────────────────

var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of image files uploaded to storage.",
	},
)

var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of order chat messages sent.",
	},
)
