// Package metrics holds the Prometheus collectors for browser navigation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments navigation operations. Collectors register against
// the registry handed to New.
type Metrics struct {
	Navigations      *prometheus.CounterVec
	NavigationErrors *prometheus.CounterVec
	Retries          prometheus.Counter
	HistoryEvictions prometheus.Counter
	ResponseSize     prometheus.Histogram
}

// New creates and registers the collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roam_navigations_total",
				Help: "Total number of completed navigations",
			},
			[]string{"method"},
		),
		NavigationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roam_navigation_errors_total",
				Help: "Total number of failed navigations",
			},
			[]string{"method"},
		),
		Retries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roam_retries_total",
				Help: "Total number of navigation retry attempts",
			},
		),
		HistoryEvictions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roam_history_evictions_total",
				Help: "Total number of states evicted from bounded history",
			},
		),
		ResponseSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "roam_response_size_bytes",
				Help:    "Decoded response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
		),
	}
}
