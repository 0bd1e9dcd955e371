// SPDX-License-Identifier: MIT

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus. Metrics are
// registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solves           prometheus.Counter
	solveSize        prometheus.Histogram
	solveLatency     prometheus.Histogram
	updates          *prometheus.CounterVec
	updateLatency    *prometheus.HistogramVec
	updateIterations *prometheus.HistogramVec
	errors           *prometheus.CounterVec
	sessions         prometheus.Gauge
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector.
//
// Parameters:
//   - reg: registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace ("dynhung" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "dynhung"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solves = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Total from-scratch solves.",
		})
		p.solveSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "problem_size",
			Help:      "Size n of solved n×n instances.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 10), // 2 .. 1024
		})
		p.solveLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solve_duration_seconds",
			Help:      "Duration of from-scratch solves in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		})
		p.updates = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "updates_total",
			Help:      "Total incremental updates by axis (row, column).",
		}, []string{"axis"})
		p.updateLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "update_duration_seconds",
			Help:      "Duration of incremental updates in seconds by axis.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{"axis"})
		p.updateIterations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "update_iterations",
			Help:      "Phase steps taken per incremental update by axis.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"axis"})
		p.errors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "errors_total",
			Help:      "Rejected operations by op and error kind (shape, index, value, not_found).",
		}, []string{"op", "kind"})
		p.sessions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Number of live solver sessions.",
		})

		p.reg.MustRegister(p.solves)
		p.reg.MustRegister(p.solveSize)
		p.reg.MustRegister(p.solveLatency)
		p.reg.MustRegister(p.updates)
		p.reg.MustRegister(p.updateLatency)
		p.reg.MustRegister(p.updateIterations)
		p.reg.MustRegister(p.errors)
		p.reg.MustRegister(p.sessions)
	})
}

// ObserveSolve records a solve.
func (p *PrometheusCollector) ObserveSolve(n, _ int, seconds float64) {
	p.ensureRegistered()
	p.solves.Inc()
	p.solveSize.Observe(float64(n))
	p.solveLatency.Observe(seconds)
}

// ObserveUpdate records an incremental update.
func (p *PrometheusCollector) ObserveUpdate(axis string, _ int, iterations int, seconds float64) {
	p.ensureRegistered()
	p.updates.WithLabelValues(axis).Inc()
	p.updateLatency.WithLabelValues(axis).Observe(seconds)
	p.updateIterations.WithLabelValues(axis).Observe(float64(iterations))
}

// IncrementError counts a rejected operation.
func (p *PrometheusCollector) IncrementError(op, kind string) {
	p.ensureRegistered()
	p.errors.WithLabelValues(op, kind).Inc()
}

// SetSessions sets the live session gauge.
func (p *PrometheusCollector) SetSessions(count int) {
	p.ensureRegistered()
	p.sessions.Set(float64(count))
}
