// Package metrics defines the Prometheus metrics for the order service.
// Each server owns its registry so several servers can live in one process.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "pedidos"

// Order mutation operations, used as the "op" label.
const (
	OpCreate    = "create"
	OpUpdate    = "update"
	OpSetActive = "set_active"
	OpDelete    = "delete"
)

// Login outcomes, used as the "result" label.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

type Metrics struct {
	Registry *prometheus.Registry

	// OrderMutationsTotal counts order writes.
	// Labels:
	//   - op: create, update, set_active, delete
	//   - matched: "true" when a row was affected, "false" for no-op writes
	OrderMutationsTotal *prometheus.CounterVec

	// LoginAttemptsTotal counts POST /login outcomes.
	LoginAttemptsTotal *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		OrderMutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_mutations_total",
				Help:      "Total number of order writes, by operation and whether a row matched.",
			},
			[]string{"op", "matched"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Total number of login attempts, by result.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.OrderMutationsTotal, m.LoginAttemptsTotal)

	return m
}

// OrderMutation records one order write.
func (m *Metrics) OrderMutation(op string, matched bool) {
	label := "false"
	if matched {
		label = "true"
	}
	m.OrderMutationsTotal.WithLabelValues(op, label).Inc()
}

// LoginAttempt records one login outcome.
func (m *Metrics) LoginAttempt(ok bool) {
	result := LoginFailure
	if ok {
		result = LoginSuccess
	}
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}
