// Package adapters normalizes LLM backends into one request/response shape.
//
// DESIGN: The agent framework talks to every backend through Provider. Each
// adapter owns the backend-specific parts:
//
//   - Request:  generic messages/tools/options -> backend request body
//   - Response: backend reply -> ProviderResponse (content, tool calls, usage)
//   - Limits:   capability queries answered from a CapabilityLookup
//
// FLOW:
//  1. Registry.Create builds an adapter from "provider/model" and settings
//  2. Agent calls GenerateResponse(ctx, messages, tools, opts)
//  3. Adapter shapes the request, calls its transport, normalizes the reply
//
// To add a new provider: implement Provider and register a Factory.
package adapters

import (
	"context"
	"errors"

	"github.com/compresr/liteagent/internal/capabilities"
)

// ErrNoTransport is returned when an adapter is built without a transport.
var ErrNoTransport = errors.New("transport is required")

// ErrInvalidResponse is returned when a backend reply is not a JSON object.
var ErrInvalidResponse = errors.New("reply is not a JSON object")

// Provider defines the unified interface for LLM backends.
// Adapters hold no per-call state and are safe for concurrent use.
type Provider interface {
	// Name returns the provider identifier (e.g., "ollama")
	Name() string

	// Model returns the configured model identifier
	Model() string

	// GenerateResponse sends one chat completion and returns the normalized reply.
	GenerateResponse(ctx context.Context, messages []Message, tools []ToolDefinition, opts GenerateOptions) (*ProviderResponse, error)

	// SupportsToolCalling reports whether tools can be passed to the model.
	SupportsToolCalling() bool

	// SupportsParallelTools reports whether the model may return several tool calls at once.
	SupportsParallelTools() bool

	// MaxTokens returns the output token limit, if known.
	MaxTokens() (int, bool)

	// ContextWindow returns the context window size, if known.
	ContextWindow() (int, bool)
}

// CapabilityLookup returns static model metadata, or nil when the model is unknown.
type CapabilityLookup interface {
	Lookup(model string) *capabilities.ModelCapabilities
}

// BaseAdapter provides common functionality for all adapters.
type BaseAdapter struct {
	name  string
	model string
}

// Name returns the adapter name.
func (a *BaseAdapter) Name() string {
	return a.name
}

// Model returns the model identifier.
func (a *BaseAdapter) Model() string {
	return a.model
}
