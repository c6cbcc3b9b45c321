package submission

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for submissions. A nil *Metrics is a no-op.
type Metrics struct {
	// Submission attempts by outcome status
	Submissions *prometheus.CounterVec

	// Time spent in the deliverer
	DeliveryLatency prometheus.Histogram
}

// NewMetrics registers submission metrics with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regform_submissions_total",
			Help: "Total submission attempts by outcome",
		}, []string{"status"}), // status: "submitted", "rejected", "failed"

		DeliveryLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "regform_delivery_duration_seconds",
			Help:    "Duration of submission delivery",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records a submission outcome.
func (m *Metrics) IncrementOutcome(status Status) {
	if m != nil {
		m.Submissions.WithLabelValues(string(status)).Inc()
	}
}

// ObserveDelivery records how long the deliverer took.
func (m *Metrics) ObserveDelivery(d time.Duration) {
	if m != nil {
		m.DeliveryLatency.Observe(d.Seconds())
	}
}
