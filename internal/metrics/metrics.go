// Package metrics exposes Prometheus instrumentation for the dispatch
// core. Collectors are served on the HTTP transport's /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/concord/pkg/domain"
)

// Metrics holds the dispatch collectors.
type Metrics struct {
	toolCalls *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concord_tool_calls_total",
				Help: "Tool calls by tool name and outcome kind.",
			},
			[]string{"tool", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concord_tool_call_duration_seconds",
				Help:    "Tool call latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}
	reg.MustRegister(m.toolCalls, m.duration)
	return m
}

// ObserveToolCall records one dispatched call.
func (m *Metrics) ObserveToolCall(tool string, res domain.Result, elapsed time.Duration) {
	outcome := "success"
	if res.Status == domain.StatusError {
		outcome = string(res.Err.Kind)
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
	m.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
