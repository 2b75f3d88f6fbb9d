package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records outcomes for cart store operations.
type CartMetrics struct {
	duration *prometheus.HistogramVec
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_op_duration_seconds",
		Help:    "Duration of cart store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_op_accepted",
		Help: "Cart operations that passed validation.",
	}, []string{"op"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_op_rejected",
		Help: "Cart operations rejected by business rules.",
	}, []string{"op"})
	reg.MustRegister(duration, accepted, rejected)
	return &CartMetrics{
		duration: duration,
		accepted: accepted,
		rejected: rejected,
	}
}

// ObserveDuration records the duration for the named operation.
func (c *CartMetrics) ObserveDuration(op string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncAccepted increments the accepted counter for the named operation.
func (c *CartMetrics) IncAccepted(op string) {
	if c == nil || c.accepted == nil {
		return
	}
	c.accepted.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncRejected increments the rejected counter for the named operation.
func (c *CartMetrics) IncRejected(op string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
