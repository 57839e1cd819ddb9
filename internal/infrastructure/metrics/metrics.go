package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Ingestion metrics
	TransactionsIngested prometheus.Counter
	DuplicatesRejected   prometheus.Counter
	ValidationFailures   *prometheus.CounterVec
	IngestDuration       prometheus.Histogram

	// Aggregation metrics
	ScanDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "txpulse_transactions_ingested_total",
			Help: "Total number of transactions accepted and stored",
		}),
		DuplicatesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "txpulse_duplicates_rejected_total",
			Help: "Total number of inserts rejected as duplicate ids",
		}),
		ValidationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txpulse_validation_failures_total",
				Help: "Total number of payloads rejected by validation, by reason",
			},
			[]string{"reason"},
		),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "txpulse_ingest_duration_seconds",
			Help:    "Duration of validate-and-insert operations",
			Buckets: prometheus.DefBuckets,
		}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "txpulse_scan_duration_seconds",
			Help:    "Duration of full-table snapshot reads",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
