// Package metrics provides Prometheus metric collectors for observability
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DatastoreMetrics contains Prometheus metrics for datastore operations
type DatastoreMetrics struct {
	saveOperationsTotal *prometheus.CounterVec
	saveDuration        prometheus.Histogram
	findingsSavedTotal  prometheus.Counter
}

// NewDatastoreMetrics creates and registers datastore metric collectors.
func NewDatastoreMetrics(registry *prometheus.Registry) (*DatastoreMetrics, error) {
	m := &DatastoreMetrics{
		saveOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odontosys_datastore_save_operations_total",
				Help: "Total number of odontogram save operations by result",
			},
			[]string{"result"},
		),
		saveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "odontosys_datastore_save_duration_seconds",
				Help:    "Duration of odontogram save transactions",
				Buckets: prometheus.DefBuckets,
			},
		),
		findingsSavedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "odontosys_datastore_findings_saved_total",
				Help: "Total number of finding rows written",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.saveOperationsTotal, m.saveDuration, m.findingsSavedTotal} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordSave records one save operation with its result and duration.
func (m *DatastoreMetrics) RecordSave(result string, seconds float64, findingCount int) {
	m.saveOperationsTotal.WithLabelValues(result).Inc()
	m.saveDuration.Observe(seconds)
	m.findingsSavedTotal.Add(float64(findingCount))
}
