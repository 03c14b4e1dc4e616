// Ollama REST client.
//
// Chat is the single entry point used by the adapter. ListModels backs the
// CLI "models" command.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout for Ollama calls. Large local models can be slow.
	DefaultTimeout = 120 * time.Second

	// maxResponseSize prevents OOM on unexpectedly large API responses (10MB).
	maxResponseSize = 10 * 1024 * 1024

	// maxErrorBodyLen limits error body in error messages to avoid log bloat.
	maxErrorBodyLen = 500

	chatPath = "/api/chat"
	tagsPath = "/api/tags"
)

// ErrEmptyHost is returned when no server URL is configured.
var ErrEmptyHost = errors.New("ollama host is required")

// OllamaClient talks to an Ollama server over HTTP.
type OllamaClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// ClientOption configures an OllamaClient.
type ClientOption func(*OllamaClient)

// WithHTTPClient overrides the default HTTP client (useful for testing and connection pooling).
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *OllamaClient) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// NewOllamaClient creates a client for the server at cfg.Host.
// The host must be an http(s) URL; a bare host:port is treated as http.
func NewOllamaClient(cfg Config, opts ...ClientOption) (*OllamaClient, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, ErrEmptyHost
	}
	// OLLAMA_HOST is often "localhost:11434" without a scheme.
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid ollama host %q: scheme must be http or https", host)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid ollama host %q: missing host", host)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &OllamaClient{
		baseURL:    strings.TrimRight(host, "/"),
		timeout:    timeout,
		httpClient: &http.Client{}, // timeout via context, not client
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized server URL.
func (c *OllamaClient) BaseURL() string { return c.baseURL }

// Timeout returns the per-call timeout.
func (c *OllamaClient) Timeout() time.Duration { return c.timeout }

// Chat sends a chat completion request and returns the raw reply body.
func (c *OllamaClient) Chat(ctx context.Context, req *ChatRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}
	return c.do(ctx, http.MethodPost, chatPath, body)
}

// ListModels returns the models available on the server.
func (c *OllamaClient) ListModels(ctx context.Context) ([]ModelEntry, error) {
	respBody, err := c.do(ctx, http.MethodGet, tagsPath, nil)
	if err != nil {
		return nil, err
	}
	var tags TagsResponse
	if err := json.Unmarshal(respBody, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse tags response: %w", err)
	}
	return tags.Models, nil
}

func (c *OllamaClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody := string(respBody)
		if len(errBody) > maxErrorBodyLen {
			errBody = errBody[:maxErrorBodyLen] + "... (truncated)"
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: errBody}
	}

	return respBody, nil
}
