package http

import (
	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the task list collectors exposed on /metrics.
type Metrics struct {
	mutations *prometheus.CounterVec
	tasks     *prometheus.GaugeVec
	degraded  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasklist_mutations_total",
				Help: "Mutation requests by operation and outcome",
			},
			[]string{"op", "result"},
		),
		tasks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tasklist_tasks",
				Help: "Tasks in the list by state",
			},
			[]string{"state"},
		),
		degraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tasklist_degraded",
			Help: "1 when the latest save failed and the list lives in memory only",
		}),
	}
	reg.MustRegister(m.mutations, m.tasks, m.degraded)
	return m
}

func (m *Metrics) mutation(op string, ok bool) {
	result := "applied"
	if !ok {
		result = "rejected"
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) observe(c domain.Counts, degraded bool) {
	m.tasks.WithLabelValues("pending").Set(float64(c.Pending))
	m.tasks.WithLabelValues("completed").Set(float64(c.Completed))
	if degraded {
		m.degraded.Set(1)
	} else {
		m.degraded.Set(0)
	}
}
