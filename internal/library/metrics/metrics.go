// Package metrics provides observability for the document library.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks document downloads and deletions.
type Metrics struct {
	DownloadsTotal prometheus.Counter
	DownloadBytes  prometheus.Counter
	DeletesTotal   prometheus.Counter
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
		DownloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lexview_library_downloads_total",
			Help: "Documents downloaded into the library (reuse of a cached copy does not count)",
		}),
		DownloadBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "lexview_library_download_bytes_total",
			Help: "Total bytes downloaded into the library",
		}),
		DeletesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lexview_library_deletes_total",
			Help: "Documents deleted from the library",
		}),
	}
}

// ObserveDownload records one completed download and its size.
func (m *Metrics) ObserveDownload(size int64) {
	m.DownloadsTotal.Inc()
	m.DownloadBytes.Add(float64(size))
}

// IncrementDelete records one completed delete.
func (m *Metrics) IncrementDelete() {
	m.DeletesTotal.Inc()
}
