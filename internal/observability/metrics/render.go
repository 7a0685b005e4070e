package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics contains Prometheus metrics for chart rendering
type RenderMetrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	cacheHitsTotal *prometheus.CounterVec
}

// NewRenderMetrics creates and registers render metric collectors.
func NewRenderMetrics(registry *prometheus.Registry) (*RenderMetrics, error) {
	m := &RenderMetrics{
		rendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odontosys_render_operations_total",
				Help: "Total number of chart render operations by result",
			},
			[]string{"result"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "odontosys_render_duration_seconds",
				Help:    "Duration of chart render operations",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		cacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odontosys_render_cache_total",
				Help: "Render cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.rendersTotal, m.renderDuration, m.cacheHitsTotal} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordRender records one render operation with its result and duration.
func (m *RenderMetrics) RecordRender(result string, seconds float64) {
	m.rendersTotal.WithLabelValues(result).Inc()
	m.renderDuration.Observe(seconds)
}

// RecordCacheLookup records a render cache hit or miss.
func (m *RenderMetrics) RecordCacheLookup(hit bool) {
	if hit {
		m.cacheHitsTotal.WithLabelValues("hit").Inc()
	} else {
		m.cacheHitsTotal.WithLabelValues("miss").Inc()
	}
}
