package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the identifier module.
type Metrics struct {
	// Validations by identifier kind and outcome ("valid" or an error code)
	Validations *prometheus.CounterVec

	ValidateLatency *prometheus.HistogramVec

	BatchSize prometheus.Histogram

	// Account numbers produced by the generator
	Generated prometheus.Counter

	// Account numbers whose checksum digit was replaced
	Forced prometheus.Counter
}

// New creates a new Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "noid_identifier_validations_total",
			Help: "Identifier validations by kind and outcome",
		}, []string{"kind", "outcome"}),

		ValidateLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "noid_identifier_validate_duration_seconds",
			Help:    "Duration of validate operations by mode",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"mode"}), // mode: "single", "batch"

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "noid_identifier_batch_size",
			Help:    "Number of items per batch validation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),

		Generated: f.NewCounter(prometheus.CounterOpts{
			Name: "noid_identifier_generated_total",
			Help: "Total account numbers generated",
		}),

		Forced: f.NewCounter(prometheus.CounterOpts{
			Name: "noid_identifier_forced_checksums_total",
			Help: "Total account numbers whose checksum digit was corrected",
		}),
	}
}

// IncrementValidation records one validation outcome.
func (m *Metrics) IncrementValidation(kind, outcome string) {
	if m != nil {
		m.Validations.WithLabelValues(kind, outcome).Inc()
	}
}

func (m *Metrics) ObserveValidateLatency(mode string, d time.Duration) {
	if m != nil {
		m.ValidateLatency.WithLabelValues(mode).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}

func (m *Metrics) AddGenerated(n int) {
	if m != nil {
		m.Generated.Add(float64(n))
	}
}

func (m *Metrics) IncrementForced() {
	if m != nil {
		m.Forced.Inc()
	}
}
