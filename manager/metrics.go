package manager

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters and gauge the Manager updates as it
// negotiates and runs plugins, registered against a caller-supplied
// Registerer rather than the global prometheus.DefaultRegisterer — the
// Go-native analogue of the teacher's injected-registerer style for
// HTTP-facing concerns.
type Metrics struct {
	Negotiated prometheus.Counter
	Accepted   prometheus.Counter
	Rejected   prometheus.Counter
	Active     prometheus.Gauge
}

// NewMetrics constructs and registers Metrics against reg. A nil reg
// constructs unregistered, standalone collectors — useful in tests that
// don't care about scraping.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Negotiated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plume_plugins_negotiated_total",
			Help: "Total number of plugin negotiation attempts.",
		}),
		Accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plume_plugins_accepted_total",
			Help: "Total number of plugins accepted by negotiation.",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plume_plugins_rejected_total",
			Help: "Total number of plugins rejected by negotiation.",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plume_active_plugins",
			Help: "Number of plugins currently active in the manager's registry.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Negotiated, m.Accepted, m.Rejected, m.Active)
	}
	return m
}
