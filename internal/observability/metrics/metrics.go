package metrics

import "github.com/prometheus/client_golang/prometheus"

// VoiceMetrics exposes counters/histograms for the voice gateway.
type VoiceMetrics struct {
	webhookTotal    *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
}

func NewVoiceMetrics(reg prometheus.Registerer) *VoiceMetrics {
	m := &VoiceMetrics{
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intakeq_voice",
			Name:      "webhook_requests_total",
			Help:      "Total voice webhook requests by classified intent",
		}, []string{"intent", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "intakeq_voice",
			Name:      "upstream_request_seconds",
			Help:      "Latency of IntakeQ API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intakeq_voice",
			Name:      "upstream_errors_total",
			Help:      "Total failed IntakeQ API calls",
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.webhookTotal, m.upstreamLatency, m.upstreamErrors)
	return m
}

func (m *VoiceMetrics) ObserveWebhook(intent, status string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(intent, status).Inc()
}

func (m *VoiceMetrics) ObserveUpstream(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(operation).Observe(seconds)
	if err != nil {
		m.upstreamErrors.WithLabelValues(operation).Inc()
	}
}
