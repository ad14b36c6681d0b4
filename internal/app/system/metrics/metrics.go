// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "revenuedash"

var (
	// PropertyListFetches counts resolved property list fetches by outcome
	// ("ready" or "unavailable").
	PropertyListFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(namespace, "dashboard", "property_list_fetches_total"),
		Help: "Property list fetches issued by dashboard mounts, by outcome",
	}, []string{"outcome"})

	// LateResultsDiscarded counts fetch results that arrived after their
	// mount was torn down.
	LateResultsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(namespace, "dashboard", "late_results_discarded_total"),
		Help: "Property list results dropped because the mount was gone",
	})

	// ActiveMounts tracks live dashboard mounts.
	ActiveMounts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(namespace, "dashboard", "active_mounts"),
		Help: "Dashboard mounts currently held in memory",
	})

	// RevenueFallbacks counts summaries served from demo figures because the
	// reservation store failed.
	RevenueFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(namespace, "revenue", "fallbacks_total"),
		Help: "Revenue summaries served from fallback figures",
	})

	// PropertyFallbacks counts tenant property lists served from the catalogue
	// because the property store failed or was empty.
	PropertyFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(namespace, "properties", "fallbacks_total"),
		Help: "Tenant property lists served from the fallback catalogue",
	})
)
