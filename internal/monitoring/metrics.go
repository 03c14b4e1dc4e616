// Package monitoring - metrics.go provides provider call counters.
//
// DESIGN: Prometheus collectors plus lightweight atomic counters:
//   - requests/successes:   Provider calls and how many produced a reply
//   - tokens:               Prompt/completion tokens by direction
//   - tool_calls:           Tool calls returned by the model
//   - argument_fallbacks:   Tool call arguments replaced with {} after a parse failure
//   - cost:                 USD spent, when pricing is known
//
// Collectors register on the Registerer passed to NewMetricsCollector. A nil
// Registerer keeps them private (tests, one-shot CLI runs).
package monitoring

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// Argument fallback stages.
const (
	StageRequest  = "request"
	StageResponse = "response"
	StageText     = "text"
)

// MetricsCollector collects provider metrics.
type MetricsCollector struct {
	requests          atomic.Int64
	successes         atomic.Int64
	toolCalls         atomic.Int64
	argumentFallbacks atomic.Int64

	RequestsTotal          *prometheus.CounterVec
	Latency                *prometheus.HistogramVec
	TokensTotal            *prometheus.CounterVec
	ToolCallsTotal         *prometheus.CounterVec
	ArgumentFallbacksTotal *prometheus.CounterVec
	CostTotal              *prometheus.CounterVec
}

// NewMetricsCollector creates a collector and registers it on reg when non-nil.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liteagent_provider_requests_total",
				Help: "Provider requests",
			},
			[]string{"provider", "model", "status"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "liteagent_provider_latency_seconds",
				Help:    "Provider latency",
				Buckets: LLMBuckets,
			},
			[]string{"provider", "model"},
		),
		TokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liteagent_provider_tokens_total",
				Help: "Token count",
			},
			[]string{"provider", "model", "direction"},
		),
		ToolCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liteagent_tool_calls_total",
				Help: "Tool calls returned by the model",
			},
			[]string{"provider", "tool_name"},
		),
		ArgumentFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liteagent_tool_argument_fallbacks_total",
				Help: "Tool call arguments replaced with an empty object",
			},
			[]string{"provider", "stage"},
		),
		CostTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liteagent_provider_cost_usd_total",
				Help: "Provider cost in USD",
			},
			[]string{"provider", "model"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			mc.RequestsTotal,
			mc.Latency,
			mc.TokensTotal,
			mc.ToolCallsTotal,
			mc.ArgumentFallbacksTotal,
			mc.CostTotal,
		)
	}
	return mc
}

// RecordRequest records a provider call and its latency.
func (mc *MetricsCollector) RecordRequest(provider, model string, success bool, latency time.Duration) {
	mc.requests.Add(1)
	status := "error"
	if success {
		mc.successes.Add(1)
		status = "ok"
	}
	mc.RequestsTotal.WithLabelValues(provider, model, status).Inc()
	mc.Latency.WithLabelValues(provider, model).Observe(latency.Seconds())
}

// RecordTokens records prompt and completion token counts.
func (mc *MetricsCollector) RecordTokens(provider, model string, prompt, completion int) {
	mc.TokensTotal.WithLabelValues(provider, model, "input").Add(float64(prompt))
	mc.TokensTotal.WithLabelValues(provider, model, "output").Add(float64(completion))
}

// RecordToolCall records one tool call returned by the model.
func (mc *MetricsCollector) RecordToolCall(provider, toolName string) {
	mc.toolCalls.Add(1)
	mc.ToolCallsTotal.WithLabelValues(provider, toolName).Inc()
}

// RecordArgumentFallback records arguments replaced with {}.
func (mc *MetricsCollector) RecordArgumentFallback(provider, stage string) {
	mc.argumentFallbacks.Add(1)
	mc.ArgumentFallbacksTotal.WithLabelValues(provider, stage).Inc()
}

// RecordCost records the USD cost of one call.
func (mc *MetricsCollector) RecordCost(provider, model string, cost float64) {
	if cost <= 0 {
		return
	}
	mc.CostTotal.WithLabelValues(provider, model).Add(cost)
}

// Stats returns current metrics.
func (mc *MetricsCollector) Stats() map[string]int64 {
	return map[string]int64{
		"requests":           mc.requests.Load(),
		"successes":          mc.successes.Load(),
		"tool_calls":         mc.toolCalls.Load(),
		"argument_fallbacks": mc.argumentFallbacks.Load(),
	}
}
