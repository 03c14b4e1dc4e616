package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/liteagent/external"
	"github.com/compresr/liteagent/internal/capabilities"
	"github.com/compresr/liteagent/internal/monitoring"
	"github.com/compresr/liteagent/internal/tokens"
)

type fakeTransport struct {
	mu       sync.Mutex
	reply    []byte
	err      error
	requests []*external.ChatRequest
}

func (f *fakeTransport) Chat(_ context.Context, req *external.ChatRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

// newTestAdapter builds an adapter whose log output lands in the returned buffer.
func newTestAdapter(t *testing.T, transport ChatTransport, opts ...Option) (*OllamaAdapter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	all := append([]Option{
		WithTransport(transport),
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
	}, opts...)
	a, err := NewOllamaAdapter("llama3.1", "", OllamaConfig{}, all...)
	require.NoError(t, err)
	return a, &buf
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewOllamaAdapter(t *testing.T) {
	a, err := NewOllamaAdapter("llama3.1:8b", "ignored", OllamaConfig{Host: "http://gpu-box:11434/"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", a.Name())
	assert.Equal(t, "llama3.1:8b", a.Model())

	client, ok := a.transport.(*external.OllamaClient)
	require.True(t, ok)
	assert.Equal(t, "http://gpu-box:11434", client.BaseURL())
	assert.Equal(t, DefaultOllamaTimeout, client.Timeout())
}

func TestNewOllamaAdapter_DefaultHost(t *testing.T) {
	a, err := NewOllamaAdapter("llama3.1", "", OllamaConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOllamaHost, a.transport.(*external.OllamaClient).BaseURL())
}

func TestNewOllamaAdapter_Errors(t *testing.T) {
	_, err := NewOllamaAdapter("", "", OllamaConfig{})
	assert.Error(t, err, "model name is required")

	_, err = NewOllamaAdapter("llama3.1", "", OllamaConfig{}, WithTransport(nil))
	assert.ErrorIs(t, err, ErrNoTransport)

	_, err = NewOllamaAdapter("llama3.1", "", OllamaConfig{Host: "ftp://box:11434"})
	assert.Error(t, err)
}

// =============================================================================
// REQUEST BUILDING
// =============================================================================

func TestBuildRequest_Basic(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	req := a.BuildRequest([]Message{NewMessage(RoleUser, "hello")}, nil, GenerateOptions{})

	assert.Equal(t, "llama3.1", req.Model)
	assert.False(t, req.Stream)
	assert.Nil(t, req.Options)
	assert.Nil(t, req.Tools)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "hello", req.Messages[0]["content"])

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"stream":false`)
	assert.NotContains(t, string(body), `"options"`)
	assert.NotContains(t, string(body), `"tools"`)
}

func TestBuildRequest_OnlySuppliedOptions(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	req := a.BuildRequest(nil, nil, GenerateOptions{Temperature: Float(0), TopK: Int(40)})

	assert.Equal(t, map[string]any{"temperature": 0.0, "top_k": 40}, req.Options)
	assert.Empty(t, req.Messages)
}

func TestBuildRequest_ConvertsTools(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})
	tools := []ToolDefinition{
		{"function": map[string]any{"name": "search"}},
		{"type": "function", "name": "flat"},
	}

	req := a.BuildRequest(nil, tools, GenerateOptions{})

	require.Len(t, req.Tools, 2)
	assert.Equal(t, map[string]any{"type": "function", "function": map[string]any{"name": "search"}}, req.Tools[0])
	assert.Equal(t, map[string]any{"type": "function", "name": "flat"}, req.Tools[1])
}

func TestBuildRequest_LogsMessagesAtDebug(t *testing.T) {
	a, buf := newTestAdapter(t, &fakeTransport{})
	a.BuildRequest([]Message{NewMessage(RoleUser, "ping")}, nil, GenerateOptions{})
	assert.Contains(t, buf.String(), "ollama chat request messages")
	assert.Contains(t, buf.String(), "ping")
}

// =============================================================================
// MESSAGE PREPROCESSING
// =============================================================================

func assistantCall(arguments any) Message {
	return Message{
		"role":    RoleAssistant,
		"content": "",
		"tool_calls": []any{
			map[string]any{
				"id":       "call_1",
				"type":     "function",
				"function": map[string]any{"name": "read_file", "arguments": arguments},
			},
		},
	}
}

func argumentsOf(t *testing.T, m Message) any {
	t.Helper()
	calls, ok := m["tool_calls"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, calls)
	fn := calls[0].(map[string]any)["function"].(map[string]any)
	return fn["arguments"]
}

func TestPreprocessMessages_Arguments(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		want     map[string]any
		fallback bool
	}{
		{"json string", `{"path": "a.txt"}`, map[string]any{"path": "a.txt"}, false},
		{"object", map[string]any{"path": "b.txt"}, map[string]any{"path": "b.txt"}, false},
		{"invalid json", `{"path": `, map[string]any{}, true},
		{"string decoding to array", `["a", "b"]`, map[string]any{}, true},
		{"number", 42, map[string]any{}, true},
		{"null", nil, map[string]any{}, true},
		{"array", []any{"x"}, map[string]any{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, buf := newTestAdapter(t, &fakeTransport{})
			in := []Message{NewMessage(RoleUser, "read it"), assistantCall(tt.input)}

			out := a.PreprocessMessages(in)

			require.Len(t, out, 2)
			assert.Equal(t, tt.want, argumentsOf(t, out[1]))
			assert.Equal(t, tt.input, argumentsOf(t, in[1]), "input is not modified")
			if tt.fallback {
				assert.Contains(t, buf.String(), "failed to parse tool call arguments")
				assert.Equal(t, int64(1), a.metrics.Stats()["argument_fallbacks"])
			} else {
				assert.NotContains(t, buf.String(), `"level":"warn"`)
			}
		})
	}
}

func TestPreprocessMessages_PassThrough(t *testing.T) {
	a, buf := newTestAdapter(t, &fakeTransport{})
	in := []Message{
		NewMessage(RoleSystem, "be brief"),
		{"role": RoleAssistant, "content": "done", "tool_calls": []any{}},
		{"role": RoleAssistant, "tool_calls": []any{map[string]any{"function": map[string]any{"name": "noop"}}}},
		{"role": RoleTool, "content": "<ok> & fine", "tool_call_id": "call_1"},
	}

	out := a.PreprocessMessages(in)

	require.Len(t, out, 4)
	assert.Equal(t, Message{"role": "system", "content": "be brief"}, out[0])
	assert.Equal(t, []any{}, out[1]["tool_calls"])
	assert.NotContains(t, out[2]["tool_calls"].([]any)[0].(map[string]any)["function"], "arguments")
	assert.Equal(t, "<ok> & fine", out[3]["content"])
	assert.NotContains(t, buf.String(), `"level":"warn"`)
}

func TestPreprocessMessages_ReturnsDeepCopy(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})
	in := []Message{assistantCall(map[string]any{"path": "a.txt"})}

	out := a.PreprocessMessages(in)
	argumentsOf(t, out[0]).(map[string]any)["path"] = "changed"

	assert.Equal(t, map[string]any{"path": "a.txt"}, argumentsOf(t, in[0]))
}

func TestPreprocessMessages_KeepsLargeIntegers(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})
	in := []Message{
		{"role": RoleUser, "content": "x", "meta": map[string]any{"n": int64(9007199254740993)}},
		assistantCall(`{"id": 9007199254740993}`),
	}

	out := a.PreprocessMessages(in)

	require.Len(t, out, 2)
	assert.Equal(t, map[string]any{"n": json.Number("9007199254740993")}, out[0]["meta"])
	assert.Equal(t, map[string]any{"id": json.Number("9007199254740993")}, argumentsOf(t, out[1]))

	body, err := json.Marshal(a.BuildRequest(in, nil, GenerateOptions{}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"arguments":{"id":9007199254740993}`)
	assert.Contains(t, string(body), `"n":9007199254740993`)
}

func TestPreprocessMessages_Empty(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})
	out := a.PreprocessMessages(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestPreprocessMessages_Unserializable(t *testing.T) {
	a, buf := newTestAdapter(t, &fakeTransport{})
	ch := make(chan int)
	in := []Message{{"role": RoleUser, "content": "hi", "extra": ch}}

	out := a.PreprocessMessages(in)

	require.Len(t, out, 1)
	assert.Equal(t, "hi", out[0].Content())
	assert.Contains(t, buf.String(), "not JSON-serializable")
}

// =============================================================================
// RESPONSE CONVERSION
// =============================================================================

func TestConvertResponse_TextAndUsage(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})
	raw := []byte(`{"model": "llama3.1:8b", "message": {"role": "assistant", "content": "Hello!"}, "done_reason": "length", "prompt_eval_count": 5, "eval_count": 3}`)

	resp, err := a.ConvertResponse(raw)
	require.NoError(t, err)

	require.NotNil(t, resp.Content)
	assert.Equal(t, "Hello!", *resp.Content)
	assert.Empty(t, resp.ToolCalls)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, Usage{PromptTokens: 5, CompletionTokens: 3, TotalTokens: 8}, *resp.Usage)
	assert.Equal(t, "llama3.1:8b", resp.Model)
	assert.Equal(t, "ollama", resp.Provider)
	assert.Equal(t, "length", resp.FinishReason)
	assert.JSONEq(t, string(raw), string(resp.RawResponse))
}

func TestConvertResponse_Defaults(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	resp, err := a.ConvertResponse([]byte(`{"message": {"content": ""}}`))
	require.NoError(t, err)

	assert.Nil(t, resp.Content)
	assert.Equal(t, "", resp.Text())
	assert.Nil(t, resp.Usage)
	assert.Equal(t, "llama3.1", resp.Model)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestConvertResponse_PartialUsage(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	resp, err := a.ConvertResponse([]byte(`{"message": {"content": "x"}, "eval_count": 7}`))
	require.NoError(t, err)

	require.NotNil(t, resp.Usage)
	assert.Equal(t, 0, resp.Usage.PromptTokens)
	assert.Equal(t, 7, resp.Usage.CompletionTokens)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
}

func TestConvertResponse_ToolCalls(t *testing.T) {
	a, buf := newTestAdapter(t, &fakeTransport{})
	raw := []byte(`{
		"model": "llama3.1",
		"message": {
			"role": "assistant",
			"content": "",
			"tool_calls": [
				{"id": "call_abc", "function": {"name": "search", "arguments": {"q": "cats"}}},
				{"function": {"name": "read_file", "arguments": "{\"path\": \"a.txt\"}"}},
				{"function": {"name": "broken", "arguments": "{not json"}},
				{"function": {"name": "bare"}}
			]
		},
		"done": true
	}`)

	resp, err := a.ConvertResponse(raw)
	require.NoError(t, err)

	assert.Nil(t, resp.Content)
	require.Len(t, resp.ToolCalls, 4)

	assert.Equal(t, ToolCall{ID: "call_abc", Name: "search", Arguments: map[string]any{"q": "cats"}}, resp.ToolCalls[0])
	assert.Equal(t, ToolCall{ID: "ollama_tool_1", Name: "read_file", Arguments: map[string]any{"path": "a.txt"}}, resp.ToolCalls[1])
	assert.Equal(t, ToolCall{ID: "ollama_tool_2", Name: "broken", Arguments: map[string]any{}}, resp.ToolCalls[2])
	assert.Equal(t, ToolCall{ID: "ollama_tool_3", Name: "bare", Arguments: map[string]any{}}, resp.ToolCalls[3])

	assert.Equal(t, []string{"search", "read_file", "broken", "bare"}, resp.ToolNames())
	assert.Contains(t, buf.String(), "failed to parse tool call arguments")
	assert.Equal(t, int64(1), a.metrics.Stats()["argument_fallbacks"])
}

func TestConvertResponse_NotJSON(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	for _, body := range []string{`<html>502 Bad Gateway</html>`, `{"message": {"content": "cut`, `["a"]`, ``} {
		resp, err := a.ConvertResponse([]byte(body))
		assert.Nil(t, resp, body)
		assert.ErrorIs(t, err, ErrInvalidResponse, body)
	}
}

func TestConvertResponse_EmptyIDGetsGenerated(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	resp, err := a.ConvertResponse([]byte(`{"message": {"tool_calls": [{"id": "", "function": {"name": "search"}}]}}`))
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "ollama_tool_0", resp.ToolCalls[0].ID)
}

func TestConvertResponse_KeepsLargeIntegers(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})
	raw := []byte(`{"message": {"tool_calls": [
		{"function": {"name": "fetch", "arguments": "{\"id\": 9007199254740993}"}},
		{"function": {"name": "fetch", "arguments": {"id": 9007199254740993, "ratio": 0.5}}}
	]}}`)

	resp, err := a.ConvertResponse(raw)
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 2)

	assert.Equal(t, map[string]any{"id": json.Number("9007199254740993")}, resp.ToolCalls[0].Arguments)
	assert.Equal(t, map[string]any{"id": json.Number("9007199254740993"), "ratio": json.Number("0.5")}, resp.ToolCalls[1].Arguments)

	out, err := json.Marshal(resp.ToolCalls[0].Arguments)
	require.NoError(t, err)
	assert.Equal(t, `{"id":9007199254740993}`, string(out))
}

// =============================================================================
// CAPABILITY QUERIES
// =============================================================================

func TestCapabilityQueries_Known(t *testing.T) {
	table := capabilities.NewStatic(capabilities.ModelCapabilities{
		ModelID:               "llama3.1",
		Provider:              "ollama",
		ToolCalling:           false,
		SupportsParallelTools: true,
		ContextLimit:          131072,
		OutputLimit:           8192,
	})
	a, _ := newTestAdapter(t, &fakeTransport{}, WithCapabilities(table))

	assert.True(t, a.SupportsToolCalling(), "tool calling is reported regardless of the lookup")
	assert.True(t, a.SupportsParallelTools())

	maxTokens, ok := a.MaxTokens()
	assert.True(t, ok)
	assert.Equal(t, 8192, maxTokens)

	window, ok := a.ContextWindow()
	assert.True(t, ok)
	assert.Equal(t, 131072, window)
}

func TestCapabilityQueries_Unknown(t *testing.T) {
	a, _ := newTestAdapter(t, &fakeTransport{})

	assert.True(t, a.SupportsToolCalling())
	assert.False(t, a.SupportsParallelTools())
	_, ok := a.MaxTokens()
	assert.False(t, ok)
	_, ok = a.ContextWindow()
	assert.False(t, ok)
}

// =============================================================================
// GENERATE RESPONSE
// =============================================================================

func TestGenerateResponse(t *testing.T) {
	transport := &fakeTransport{reply: []byte(`{
		"model": "llama3.1",
		"message": {"content": "", "tool_calls": [{"function": {"name": "search", "arguments": {"q": "go"}}}]},
		"prompt_eval_count": 12, "eval_count": 4, "done_reason": "stop"
	}`)}
	a, buf := newTestAdapter(t, transport)

	messages := []Message{NewMessage(RoleUser, "search for go"), assistantCall(`{"path": "x"}`)}
	tools := []ToolDefinition{{"function": map[string]any{"name": "search"}}}

	resp, err := a.GenerateResponse(context.Background(), messages, tools, GenerateOptions{TopP: Float(0.9)})
	require.NoError(t, err)

	require.Len(t, transport.requests, 1)
	sent := transport.requests[0]
	assert.Equal(t, map[string]any{"top_p": 0.9}, sent.Options)
	require.Len(t, sent.Tools, 1)
	assert.Equal(t, map[string]any{"path": "x"}, argumentsOf(t, sent.Messages[1]))

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "ollama_tool_0", resp.ToolCalls[0].ID)
	assert.Equal(t, 16, resp.Usage.TotalTokens)

	stats := a.metrics.Stats()
	assert.Equal(t, int64(1), stats["requests"])
	assert.Equal(t, int64(1), stats["successes"])
	assert.Equal(t, int64(1), stats["tool_calls"])

	logs := buf.String()
	assert.Contains(t, logs, "calling provider")
	assert.Contains(t, logs, "provider response")
	assert.Contains(t, logs, `"request_id"`)
}

func TestGenerateResponse_KeepsRequestID(t *testing.T) {
	a, buf := newTestAdapter(t, &fakeTransport{reply: []byte(`{"message": {"content": "ok"}}`)})
	ctx := monitoring.WithRequestIDContext(context.Background(), "req-123")

	_, err := a.GenerateResponse(ctx, []Message{NewMessage(RoleUser, "hi")}, nil, GenerateOptions{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestGenerateResponse_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	a, buf := newTestAdapter(t, &fakeTransport{err: cause})

	resp, err := a.GenerateResponse(context.Background(), []Message{NewMessage(RoleUser, "hi")}, nil, GenerateOptions{})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ollama chat request failed")
	assert.Contains(t, buf.String(), "provider request failed")

	stats := a.metrics.Stats()
	assert.Equal(t, int64(1), stats["requests"])
	assert.Equal(t, int64(0), stats["successes"])
}

func TestGenerateResponse_InvalidReply(t *testing.T) {
	a, buf := newTestAdapter(t, &fakeTransport{reply: []byte(`<html>502 Bad Gateway</html>`)})

	resp, err := a.GenerateResponse(context.Background(), []Message{NewMessage(RoleUser, "hi")}, nil, GenerateOptions{})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, buf.String(), "provider request failed")

	stats := a.metrics.Stats()
	assert.Equal(t, int64(1), stats["requests"])
	assert.Equal(t, int64(0), stats["successes"])
}

func TestGenerateResponse_CostFromPricing(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsCollector(reg)
	table := capabilities.NewStatic(capabilities.ModelCapabilities{
		ModelID: "llama3.1",
		Pricing: &capabilities.Pricing{Input: 1.0, Output: 2.0},
	})
	a, buf := newTestAdapter(t,
		&fakeTransport{reply: []byte(`{"message": {"content": "ok"}, "prompt_eval_count": 1000000, "eval_count": 500000}`)},
		WithCapabilities(table),
		WithMetrics(metrics),
	)

	_, err := a.GenerateResponse(context.Background(), []Message{NewMessage(RoleUser, "hi")}, nil, GenerateOptions{})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.CostTotal.WithLabelValues("ollama", "llama3.1")), 1e-9)
	assert.InDelta(t, 1000000, testutil.ToFloat64(metrics.TokensTotal.WithLabelValues("ollama", "llama3.1", "input")), 1e-9)
	assert.Contains(t, buf.String(), `"cost_usd":2`)
}

func TestGenerateResponse_PreflightWarning(t *testing.T) {
	table := capabilities.NewStatic(capabilities.ModelCapabilities{ModelID: "llama3.1", ContextLimit: 10})
	a, buf := newTestAdapter(t,
		&fakeTransport{reply: []byte(`{"message": {"content": "ok"}}`)},
		WithCapabilities(table),
		WithEstimator(tokens.Ratio{BytesPerToken: 1}),
	)

	resp, err := a.GenerateResponse(context.Background(), []Message{NewMessage(RoleUser, "a prompt longer than ten bytes")}, nil, GenerateOptions{})
	require.NoError(t, err, "the request is still sent")
	assert.Equal(t, "ok", resp.Text())
	assert.Contains(t, buf.String(), "prompt likely exceeds the model context window")
}

func TestGenerateResponse_OverHTTP(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model": "llama3.1", "message": {"role": "assistant", "content": "pong"}, "done": true, "done_reason": "stop", "prompt_eval_count": 3, "eval_count": 1}`))
	}))
	defer server.Close()

	a, err := NewOllamaAdapter("llama3.1", "", OllamaConfig{Host: server.URL}, WithLogger(zerolog.New(io.Discard)))
	require.NoError(t, err)

	resp, err := a.GenerateResponse(context.Background(), []Message{NewMessage(RoleUser, "ping")}, nil, GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, "pong", resp.Text())
	assert.Equal(t, 4, resp.Usage.TotalTokens)
	assert.Equal(t, false, got["stream"])
	assert.Equal(t, "llama3.1", got["model"])
	assert.NotContains(t, got, "options")
}

func TestGenerateResponse_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'nope' not found"}`))
	}))
	defer server.Close()

	a, err := NewOllamaAdapter("nope", "", OllamaConfig{Host: server.URL}, WithLogger(zerolog.New(io.Discard)))
	require.NoError(t, err)

	_, err = a.GenerateResponse(context.Background(), []Message{NewMessage(RoleUser, "ping")}, nil, GenerateOptions{})
	require.Error(t, err)

	var statusErr *external.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "not found")
}
