// Package monitoring - request_logger.go logs the provider call lifecycle.
//
// DESIGN: Structured logging for request tracing at INFO level:
//   - LogRequest:  Provider call about to be made
//   - LogResponse: Normalized reply received
//   - LogFailure:  Transport error
package monitoring

import (
	"time"
)

// RequestLogger logs provider request lifecycle events.
type RequestLogger struct {
	logger *Logger
}

// NewRequestLogger creates a new request logger.
func NewRequestLogger(logger *Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// LogRequest logs an outgoing provider request.
func (rl *RequestLogger) LogRequest(info *ProviderRequestInfo) {
	event := rl.logger.Info().
		Str("request_id", info.RequestID).
		Str("provider", info.Provider).
		Str("model", info.Model).
		Int("messages", info.MessageCount)
	if len(info.ToolNames) > 0 {
		event = event.Strs("tools", info.ToolNames)
	} else {
		event = event.Bool("no_tools", true)
	}
	event.Msg("calling provider")
}

// LogResponse logs a normalized provider reply.
func (rl *RequestLogger) LogResponse(info *ProviderResponseInfo) {
	event := rl.logger.Info().
		Str("request_id", info.RequestID).
		Str("provider", info.Provider).
		Str("model", info.Model).
		Dur("elapsed", info.Elapsed).
		Str("finish_reason", info.FinishReason)
	if len(info.ToolNames) > 0 {
		event = event.Strs("tool_calls", info.ToolNames)
	}
	if info.HasUsage {
		event = event.
			Int("prompt_tokens", info.PromptTokens).
			Int("completion_tokens", info.CompletionTokens).
			Int("total_tokens", info.TotalTokens)
	}
	if info.Cost > 0 {
		event = event.Float64("cost_usd", info.Cost)
	}
	event.Msg("provider response")
}

// LogFailure logs a provider call that did not produce a reply.
func (rl *RequestLogger) LogFailure(requestID, provider, model string, elapsed time.Duration, err error) {
	rl.logger.Error().
		Err(err).
		Str("request_id", requestID).
		Str("provider", provider).
		Str("model", model).
		Dur("elapsed", elapsed).
		Msg("provider request failed")
}
