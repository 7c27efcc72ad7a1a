package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ricirt/dingtalk-alert/internal/dingtalk"
	"github.com/ricirt/dingtalk-alert/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	AlertsSent      *prometheus.CounterVec
	AlertsFailed    *prometheus.CounterVec
	DeliveryLatency *prometheus.HistogramVec
	ResponseStatus  *prometheus.CounterVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AlertsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dingtalk_alerts_sent_total",
			Help: "Alerts whose HTTP exchange with the robot webhook completed.",
		}, []string{"kind"}),

		AlertsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dingtalk_alerts_failed_total",
			Help: "Alerts that could not be delivered, by transport error code.",
		}, []string{"kind", "code"}),

		DeliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dingtalk_delivery_seconds",
			Help:    "Time from encoding an alert to reading the webhook response.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),

		ResponseStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dingtalk_response_status_total",
			Help: "Webhook responses by HTTP status code.",
		}, []string{"code"}),
	}

	reg.MustRegister(
		m.AlertsSent,
		m.AlertsFailed,
		m.DeliveryLatency,
		m.ResponseStatus,
	)

	return m
}

// Hooks returns the callbacks expected by dingtalk.Hooks.
// Centralises the prometheus observation calls so the client stays import-free.
func (m *Metrics) Hooks() dingtalk.Hooks {
	return dingtalk.Hooks{
		OnDelivered: func(kind domain.MessageKind, status int, latency time.Duration) {
			m.AlertsSent.WithLabelValues(string(kind)).Inc()
			m.DeliveryLatency.WithLabelValues(string(kind)).Observe(latency.Seconds())
			m.ResponseStatus.WithLabelValues(strconv.Itoa(status)).Inc()
		},
		OnFailed: func(kind domain.MessageKind, code string) {
			m.AlertsFailed.WithLabelValues(string(kind), code).Inc()
		},
	}
}
