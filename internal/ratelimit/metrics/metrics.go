package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions    *prometheus.CounterVec
	BucketsSwept prometheus.Counter
}

// New registers the rate limit collectors with the default registry. Call it
// once per process.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "noid_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and outcome",
		}, []string{"class", "outcome"}),
		BucketsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "noid_ratelimit_buckets_swept_total",
			Help: "Total number of idle rate limit buckets removed",
		}),
	}
}

func (m *Metrics) RecordDecision(class string, allowed bool) {
	if m == nil {
		return
	}
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	m.Decisions.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) AddBucketsSwept(n int) {
	if m == nil {
		return
	}
	m.BucketsSwept.Add(float64(n))
}
