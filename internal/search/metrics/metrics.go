// Package metrics provides observability for the search pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registry fetch volume, fetch failures, and search durations.
type Metrics struct {
	FetchTotal     prometheus.Counter
	FetchFailures  prometheus.Counter
	FetchDuration  prometheus.Histogram
	SearchDuration prometheus.Histogram
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a Metrics instance registered on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lexview_registry_fetches_total",
			Help: "Total number of (publisher, year) registry fetches attempted",
		}),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "lexview_registry_fetch_failures_total",
			Help: "Registry fetches that failed and degraded to zero records",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lexview_registry_fetch_duration_seconds",
			Help:    "Duration of individual registry fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lexview_search_duration_seconds",
			Help:    "Duration of whole search operations (fetch fan-out plus filtering)",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// ObserveFetch records one attempted fetch and its duration.
// Call with time.Now() captured at the start of the fetch.
func (m *Metrics) ObserveFetch(start time.Time) {
	m.FetchTotal.Inc()
	m.FetchDuration.Observe(time.Since(start).Seconds())
}

// IncrementFetchFailure records a fetch that degraded to zero records.
func (m *Metrics) IncrementFetchFailure() {
	m.FetchFailures.Inc()
}

// ObserveSearch records the duration of a complete search operation.
// Call with time.Now() captured at the start of the search.
func (m *Metrics) ObserveSearch(start time.Time) {
	m.SearchDuration.Observe(time.Since(start).Seconds())
}
