// Package monitoring - types.go defines shared types.
//
// TYPES:
//   - LoggerConfig:         Logger construction settings
//   - ProviderRequestInfo:  One outgoing provider call
//   - ProviderResponseInfo: The normalized result of that call
package monitoring

import "time"

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	Output string `yaml:"output"` // stdout, stderr, or file path
}

// ProviderRequestInfo describes a request about to be sent to a provider.
type ProviderRequestInfo struct {
	RequestID    string
	Provider     string
	Model        string
	MessageCount int
	ToolNames    []string
}

// ProviderResponseInfo describes a normalized provider reply.
type ProviderResponseInfo struct {
	RequestID        string
	Provider         string
	Model            string
	Elapsed          time.Duration
	ToolNames        []string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	HasUsage         bool
	Cost             float64
	FinishReason     string
}
