// Package metrics defines and registers the custom Prometheus metrics of the
// service catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto); HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests turned away by the auth gate.
// Label:
//   - reason: "no_token", "token_invalid", "user_not_found" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth gate, by reason.",
	},
	[]string{"reason"},
)

// UserCacheTotal counts user cache lookups.
// Label:
//   - result: "hit" or "miss"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of user cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Service metrics ───────────────────────────────────────────────────────────

// ServiceOperationsTotal counts catalog operations by outcome.
// Labels:
//   - operation: "list", "get", "create", "update" or "delete"
//   - outcome:   "ok", "not_found", "invalid" or "error"
var ServiceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_operations_total",
		Help:      "Total number of catalog service operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ServicesListedCount observes how many services a list call returned.
var ServicesListedCount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "services_listed_count",
		Help:      "Number of services returned per list request.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 … 512
	},
)
