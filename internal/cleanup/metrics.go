package cleanup

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the run counters on their own registry so a one-shot run can
// write them to a node_exporter textfile.
type Metrics struct {
	Registry *prometheus.Registry

	PagesTotal   *prometheus.CounterVec
	PatchLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phantomclear_pages_total",
				Help: "Notion pages processed by outcome",
			},
			[]string{"outcome"},
		),
		PatchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "phantomclear_patch_latency_ms",
				Help:    "Notion page PATCH latency",
				Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000},
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) observe(outcome Outcome, latencyMs float64) {
	m.PagesTotal.WithLabelValues(string(outcome)).Inc()
	m.PatchLatency.WithLabelValues(string(outcome)).Observe(latencyMs)
}

// WriteTextfile writes the registry in Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
