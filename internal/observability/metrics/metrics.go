package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking form flow.
type BookingMetrics struct {
	sessionsStarted  prometheus.Counter
	submissionsTotal *prometheus.CounterVec
	webhookLatency   prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bookingform",
			Subsystem: "sessions",
			Name:      "started_total",
			Help:      "Total form sessions created",
		}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookingform",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Submission attempts by outcome",
		}, []string{"outcome"}),
		webhookLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bookingform",
			Subsystem: "submissions",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of the outbound webhook delivery",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.submissionsTotal, m.webhookLatency)
	return m
}

func (m *BookingMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

// ObserveSubmission records one attempt. Outcomes: success, failed,
// rejected (gate closed), dropped (duplicate while submitting).
func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveWebhookLatency(seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.Observe(seconds)
}
