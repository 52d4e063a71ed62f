// Package metrics defines and registers all custom Prometheus metrics for
// the admin API. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eshop_admin"

// SignInsTotal counts authentication attempts.
// Label:
//   - result: "success", "not_found", "unauthorized", "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "success", "conflict", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registrations, by result.",
	},
	[]string{"result"},
)

// RoleAssignmentsTotal counts role reconciliation requests.
// Label:
//   - result: "success", "not_found", "error"
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of role assignment operations, by result.",
	},
	[]string{"result"},
)

// UserPagingDuration measures how long one user paging query takes,
// including the count and the page fetch.
var UserPagingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "user_paging_duration_seconds",
		Help:      "Duration of paged user queries.",
		Buckets:   prometheus.DefBuckets,
	},
)

// CatalogRelayErrorsTotal counts failed relays to the backend catalog API.
// Label:
//   - target: "products" or "categories"
var CatalogRelayErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_relay_errors_total",
		Help:      "Total number of failed relays to the backend catalog API.",
	},
	[]string{"target"},
)
