// filepath: internal/metrics/metrics.go
// Package metrics exposes prometheus counters for ingestion outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ingestion counters. Instances are created per service
// so independent instances (e.g. in tests) never share hidden state.
type Metrics struct {
	DocumentsCommitted prometheus.Counter
	DocumentsRejected  *prometheus.CounterVec
	BytesCommitted     prometheus.Counter
	BatchRollbacks     prometheus.Counter
}

// New registers the ingestion counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "docvault_documents_committed_total",
			Help: "Documents successfully committed to the final store.",
		}),
		DocumentsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docvault_documents_rejected_total",
			Help: "Documents rejected before commit, by reason.",
		}, []string{"reason"}),
		BytesCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "docvault_bytes_committed_total",
			Help: "Total bytes committed to the final store.",
		}),
		BatchRollbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "docvault_batch_rollbacks_total",
			Help: "Batches that failed and rolled back prior commits.",
		}),
	}
}
