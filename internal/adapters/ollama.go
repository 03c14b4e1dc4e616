package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/compresr/liteagent/external"
	"github.com/compresr/liteagent/internal/capabilities"
	"github.com/compresr/liteagent/internal/monitoring"
	"github.com/compresr/liteagent/internal/tokens"
)

const (
	// ProviderOllama is the provider identifier reported in responses.
	ProviderOllama = "ollama"

	// DefaultOllamaHost is used when no host is configured.
	DefaultOllamaHost = "http://localhost:11434"

	// DefaultOllamaTimeout is generous because large local models are slow.
	DefaultOllamaTimeout = external.DefaultTimeout
)

// ChatTransport sends one non-streaming chat request and returns the raw reply body.
type ChatTransport interface {
	Chat(ctx context.Context, req *external.ChatRequest) ([]byte, error)
}

// OllamaConfig holds connection settings for the default transport.
type OllamaConfig struct {
	Host    string
	Timeout time.Duration
}

// OllamaAdapter talks to a local Ollama server through /api/chat.
//
// Ollama wants tool call arguments as objects while conversation memory
// usually stores them as JSON strings, so requests are normalized on the way
// out. Replies carry prompt_eval_count/eval_count instead of OpenAI-style usage.
type OllamaAdapter struct {
	BaseAdapter

	transport     ChatTransport
	caps          CapabilityLookup
	estimator     tokens.Estimator
	logger        zerolog.Logger
	requestLogger *monitoring.RequestLogger
	metrics       *monitoring.MetricsCollector
}

// Option configures a provider built by NewOllamaAdapter or a Factory.
type Option func(*options)

type options struct {
	transport    ChatTransport
	transportSet bool
	caps         CapabilityLookup
	estimator    tokens.Estimator
	logger       *zerolog.Logger
	metrics      *monitoring.MetricsCollector
}

// WithTransport replaces the HTTP client. Passing nil is an error.
func WithTransport(t ChatTransport) Option {
	return func(o *options) {
		o.transport = t
		o.transportSet = true
	}
}

// WithCapabilities sets the capability lookup used by the capability queries.
func WithCapabilities(c CapabilityLookup) Option {
	return func(o *options) {
		o.caps = c
	}
}

// WithEstimator enables the preflight context-window check.
func WithEstimator(e tokens.Estimator) Option {
	return func(o *options) {
		o.estimator = e
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// NewOllamaAdapter creates an adapter for modelName. apiKey is accepted for
// interface parity and ignored; local servers need no credentials.
func NewOllamaAdapter(modelName, apiKey string, cfg OllamaConfig, opts ...Option) (*OllamaAdapter, error) {
	if modelName == "" {
		return nil, errors.New("ollama: model name is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	transport := o.transport
	if o.transportSet && transport == nil {
		return nil, fmt.Errorf("ollama: %w", ErrNoTransport)
	}
	if !o.transportSet {
		host := cfg.Host
		if host == "" {
			host = DefaultOllamaHost
		}
		client, err := external.NewOllamaClient(external.Config{Host: host, Timeout: cfg.Timeout})
		if err != nil {
			return nil, fmt.Errorf("ollama: %w", err)
		}
		transport = client
	}

	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
	}
	caps := o.caps
	if caps == nil {
		caps = capabilities.NewStatic()
	}
	metrics := o.metrics
	if metrics == nil {
		metrics = monitoring.NewMetricsCollector(nil)
	}

	return &OllamaAdapter{
		BaseAdapter: BaseAdapter{
			name:  ProviderOllama,
			model: modelName,
		},
		transport:     transport,
		caps:          caps,
		estimator:     o.estimator,
		logger:        logger,
		requestLogger: monitoring.NewRequestLogger(monitoring.Wrap(logger)),
		metrics:       metrics,
	}, nil
}

// GenerateResponse sends messages (and tools, when given) to /api/chat and
// returns the normalized reply. Transport failures are returned unchanged
// apart from wrapping; there are no retries.
func (a *OllamaAdapter) GenerateResponse(ctx context.Context, messages []Message, tools []ToolDefinition, opts GenerateOptions) (*ProviderResponse, error) {
	start := time.Now()

	requestID := monitoring.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = monitoring.WithRequestIDContext(ctx, requestID)
	}

	toolNames := make([]string, 0, len(tools))
	for _, t := range tools {
		toolNames = append(toolNames, t.Name())
	}
	a.requestLogger.LogRequest(&monitoring.ProviderRequestInfo{
		RequestID:    requestID,
		Provider:     a.name,
		Model:        a.model,
		MessageCount: len(messages),
		ToolNames:    toolNames,
	})

	req := a.BuildRequest(messages, tools, opts)
	a.preflight(requestID, req)

	raw, err := a.transport.Chat(ctx, req)
	if err != nil {
		elapsed := time.Since(start)
		a.metrics.RecordRequest(a.name, a.model, false, elapsed)
		a.requestLogger.LogFailure(requestID, a.name, a.model, elapsed, err)
		return nil, fmt.Errorf("ollama chat request failed: %w", err)
	}

	resp, err := a.ConvertResponse(raw)
	elapsed := time.Since(start)
	if err != nil {
		a.metrics.RecordRequest(a.name, a.model, false, elapsed)
		a.requestLogger.LogFailure(requestID, a.name, a.model, elapsed, err)
		return nil, err
	}

	a.metrics.RecordRequest(a.name, a.model, true, elapsed)
	for _, tc := range resp.ToolCalls {
		a.metrics.RecordToolCall(a.name, tc.Name)
	}

	info := &monitoring.ProviderResponseInfo{
		RequestID:    requestID,
		Provider:     resp.Provider,
		Model:        resp.Model,
		Elapsed:      elapsed,
		ToolNames:    resp.ToolNames(),
		FinishReason: resp.FinishReason,
	}
	if resp.Usage != nil {
		a.metrics.RecordTokens(a.name, a.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		info.HasUsage = true
		info.PromptTokens = resp.Usage.PromptTokens
		info.CompletionTokens = resp.Usage.CompletionTokens
		info.TotalTokens = resp.Usage.TotalTokens
		info.Cost = a.cost(resp.Usage)
		a.metrics.RecordCost(a.name, a.model, info.Cost)
	}
	a.requestLogger.LogResponse(info)

	return resp, nil
}

// BuildRequest assembles the /api/chat body without sending it.
func (a *OllamaAdapter) BuildRequest(messages []Message, tools []ToolDefinition, opts GenerateOptions) *external.ChatRequest {
	processed := a.PreprocessMessages(messages)

	req := &external.ChatRequest{
		Model:    a.model,
		Messages: make([]map[string]any, len(processed)),
		Stream:   false,
	}
	for i, m := range processed {
		req.Messages[i] = m
	}

	options := map[string]any{}
	if opts.Temperature != nil {
		options["temperature"] = *opts.Temperature
	}
	if opts.TopP != nil {
		options["top_p"] = *opts.TopP
	}
	if opts.TopK != nil {
		options["top_k"] = *opts.TopK
	}
	if len(options) > 0 {
		req.Options = options
	}

	if len(tools) > 0 && a.SupportsToolCalling() {
		converted := ConvertTools(tools)
		req.Tools = make([]map[string]any, len(converted))
		for i, t := range converted {
			req.Tools[i] = t
		}
	}

	if e := a.logger.Debug(); e.Enabled() {
		if rendered, err := prettyJSON(req.Messages); err == nil {
			e.Str("model", a.model).Msgf("ollama chat request messages:\n%s", rendered)
		} else {
			e.Discard()
		}
	}

	return req
}

// SupportsToolCalling is always true: models without native tool support can
// still be driven through EmbedToolsInPrompt.
func (a *OllamaAdapter) SupportsToolCalling() bool {
	return true
}

// SupportsParallelTools reports the capability record's flag, false when unknown.
func (a *OllamaAdapter) SupportsParallelTools() bool {
	if c := a.caps.Lookup(a.model); c != nil {
		return c.SupportsParallelTools
	}
	return false
}

// MaxTokens returns the model's output limit, if known.
func (a *OllamaAdapter) MaxTokens() (int, bool) {
	if c := a.caps.Lookup(a.model); c != nil && c.OutputLimit > 0 {
		return c.OutputLimit, true
	}
	return 0, false
}

// ContextWindow returns the model's context limit, if known.
func (a *OllamaAdapter) ContextWindow() (int, bool) {
	if c := a.caps.Lookup(a.model); c != nil && c.ContextLimit > 0 {
		return c.ContextLimit, true
	}
	return 0, false
}

// preflight estimates prompt size and warns when it exceeds the context window.
// The request is sent regardless; the server truncates on its own terms.
func (a *OllamaAdapter) preflight(requestID string, req *external.ChatRequest) {
	if a.estimator == nil {
		return
	}
	window, ok := a.ContextWindow()
	if !ok {
		return
	}
	body, err := json.Marshal(req.Messages)
	if err != nil {
		return
	}
	estimated := a.estimator.Count(string(body))

	a.logger.Debug().
		Str("request_id", requestID).
		Str("model", a.model).
		Int("estimated_tokens", estimated).
		Int("context_window", window).
		Msg("preflight token estimate")

	if estimated > window {
		a.logger.Warn().
			Str("request_id", requestID).
			Str("model", a.model).
			Int("estimated_tokens", estimated).
			Int("context_window", window).
			Msg("prompt likely exceeds the model context window")
	}
}

// cost prices usage from the capability record; 0 when pricing is unknown.
func (a *OllamaAdapter) cost(u *Usage) float64 {
	c := a.caps.Lookup(a.model)
	if c == nil || c.Pricing == nil {
		return 0
	}
	return monitoring.CalculateCost(u.PromptTokens, u.CompletionTokens, c.Pricing.Input, c.Pricing.Output)
}

var _ Provider = (*OllamaAdapter)(nil)
