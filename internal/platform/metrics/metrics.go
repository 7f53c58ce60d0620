package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ChecksTotal     prometheus.Counter
	CheckFailures   prometheus.Counter
	AlertsFound     prometheus.Counter
	Deliveries      *prometheus.CounterVec
	LastCheckAlerts prometheus.Gauge
}

// New creates all metrics on the given registerer. Tests pass a fresh
// prometheus.NewRegistry so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChecksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "passwatch_checks_total",
			Help: "Total number of password expiration checks started",
		}),
		CheckFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "passwatch_check_failures_total",
			Help: "Total number of checks abandoned due to directory errors",
		}),
		AlertsFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "passwatch_alerts_found_total",
			Help: "Total number of users found inside the warning window",
		}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passwatch_deliveries_total",
			Help: "Delivery attempts by channel and result",
		}, []string{"channel", "result"}),
		LastCheckAlerts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "passwatch_last_check_alerts",
			Help: "Number of due alerts found by the most recent check",
		}),
	}
}

// ObserveDelivery records one delivery attempt outcome.
func (m *Metrics) ObserveDelivery(channel string, succeeded bool) {
	result := "success"
	if !succeeded {
		result = "failure"
	}
	m.Deliveries.WithLabelValues(channel, result).Inc()
}
