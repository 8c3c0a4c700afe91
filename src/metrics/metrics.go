// Package metrics exposes optional Prometheus instrumentation for the
// dispatcher and reload supervisor. It is off-path: the zero value of
// Metrics is fully usable and records nothing, so callers never need a nil
// check or a feature-flag branch in core logic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters and gauges this daemon exposes. The zero value
// has nil collectors and every method becomes a no-op.
type Metrics struct {
	dispatched *prometheus.CounterVec
	retried    prometheus.Counter
	scheduleSz prometheus.Gauge
	reloads    *prometheus.CounterVec
}

// New registers collectors against a fresh registry and returns both the
// Metrics handle and an http.Handler serving them in the Prometheus text
// format.
func New() (*Metrics, http.Handler) {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chronos_tasks_dispatched_total",
			Help: "Total number of tasks dispatched, by outcome.",
		}, []string{"outcome"}),
		retried: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronos_tasks_retried_total",
			Help: "Total number of retry instances enqueued.",
		}),
		scheduleSz: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chronos_schedule_size",
			Help: "Number of tasks currently pending in the active schedule.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chronos_reloads_total",
			Help: "Total number of schedule-file reload attempts, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.dispatched, m.retried, m.scheduleSz, m.reloads)
	return m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveDispatch(success bool) {
	if m == nil || m.dispatched == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.dispatched.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRetry() {
	if m == nil || m.retried == nil {
		return
	}
	m.retried.Inc()
}

func (m *Metrics) SetScheduleSize(n int) {
	if m == nil || m.scheduleSz == nil {
		return
	}
	m.scheduleSz.Set(float64(n))
}

func (m *Metrics) ObserveReload(ok bool) {
	if m == nil || m.reloads == nil {
		return
	}
	result := "parse_error"
	if ok {
		result = "ok"
	}
	m.reloads.WithLabelValues(result).Inc()
}
