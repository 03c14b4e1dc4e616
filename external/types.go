// Package external provides the HTTP transport to the Ollama inference server.
//
// DESIGN: This package only moves bytes. Request shaping and response
// normalization live in internal/adapters; the client returns the raw reply
// so callers can keep it for introspection.
package external

import (
	"fmt"
	"time"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Model    string           `json:"model"`
	Messages []map[string]any `json:"messages"`
	// Stream is always serialized; false asks for the complete reply in one body.
	Stream  bool             `json:"stream"`
	Options map[string]any   `json:"options,omitempty"`
	Tools   []map[string]any `json:"tools,omitempty"`
}

// ModelEntry is one model from GET /api/tags.
type ModelEntry struct {
	Name       string       `json:"name"`
	Model      string       `json:"model"`
	ModifiedAt string       `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

// ModelDetails holds model metadata.
type ModelDetails struct {
	ParentModel       string   `json:"parent_model"`
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// TagsResponse is the response for GET /api/tags.
type TagsResponse struct {
	Models []ModelEntry `json:"models"`
}

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama API returned status %d: %s", e.StatusCode, e.Body)
}

// Config holds transport settings.
type Config struct {
	// Host is the server base URL, e.g. http://localhost:11434.
	Host string `yaml:"host"`

	// Timeout bounds each call, applied through the request context.
	Timeout time.Duration `yaml:"timeout"`
}
