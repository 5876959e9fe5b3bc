// Package metrics exposes ledger counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the ledger's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	webhookEvents *prometheus.CounterVec
	credited      *prometheus.CounterVec
	ordersCreated prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trust_ledger",
			Name:      "webhook_events_total",
			Help:      "Gateway webhook deliveries by outcome.",
		}, []string{"outcome"}),
		credited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trust_ledger",
			Name:      "credited_minor_units_total",
			Help:      "Amount credited to bills, in minor currency units.",
		}, []string{"currency"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trust_ledger",
			Name:      "orders_created_total",
			Help:      "Gateway orders created for bills.",
		}),
	}
	reg.MustRegister(m.webhookEvents, m.credited, m.ordersCreated)
	return m
}

// ObserveWebhook counts one webhook delivery with the given outcome
func (m *Metrics) ObserveWebhook(outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(outcome).Inc()
}

// ObserveCredit adds a credited amount
func (m *Metrics) ObserveCredit(currency string, minorUnits int64) {
	if m == nil {
		return
	}
	m.credited.WithLabelValues(currency).Add(float64(minorUnits))
}

// ObserveOrder counts a created gateway order
func (m *Metrics) ObserveOrder() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}
