package telemetry

import (
	"dla/internal/sims/dla"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeLabel = "outcome"

// Metrics exports walk counters for one field.
type Metrics struct {
	walks         *prometheus.CounterVec
	steps         prometheus.Histogram
	aggregateSize prometheus.Gauge
	drift         prometheus.Gauge
}

// NewMetrics registers the DLA metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		walks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dla_walks_total",
			Help: "The number of finished walks by outcome.",
		}, []string{outcomeLabel}),
		steps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dla_walk_steps",
			Help:    "Steps taken per walk.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		aggregateSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dla_aggregate_size",
			Help: "The number of aggregated points, seed included.",
		}),
		drift: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dla_drift",
			Help: "The current drift coefficient.",
		}),
	}
}

// Observe updates the metrics after one walk.
func (m *Metrics) Observe(out dla.Outcome, aggregateSize int, drift float64) {
	m.walks.With(prometheus.Labels{outcomeLabel: out.State.String()}).Inc()
	m.steps.Observe(float64(out.Steps))
	m.aggregateSize.Set(float64(aggregateSize))
	m.drift.Set(drift)
}
