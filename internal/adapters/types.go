package adapters

import (
	"encoding/json"
	"fmt"
)

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is a single chat message in the framework-wide format.
//
// Messages stay as plain mappings because conversation history arrives from
// storage with inconsistent shapes (tool call arguments are sometimes a JSON
// string, sometimes an object). Known keys: role, content, tool_calls.
type Message map[string]any

// NewMessage creates a message with the given role and content.
func NewMessage(role, content string) Message {
	return Message{"role": role, "content": content}
}

// Role returns the message role, or "" when missing.
func (m Message) Role() string {
	return getString(m, "role")
}

// Content returns the text content, or "" when missing or not a string.
func (m Message) Content() string {
	return getString(m, "content")
}

// ToolDefinition describes a callable tool. Either OpenAI-style
// ({"type": "function", "function": {...}}) or flat ({"name", "description", "parameters"}).
type ToolDefinition map[string]any

// Name returns the tool name from either the nested function block or the flat form.
func (t ToolDefinition) Name() string {
	if fn, ok := t["function"].(map[string]any); ok {
		if name := getString(fn, "name"); name != "" {
			return name
		}
	}
	return getString(t, "name")
}

// ToolCall is a normalized tool invocation returned by a provider.
// Arguments is always a mapping, never a raw string.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Usage reports token counts for one completion.
// TotalTokens is always PromptTokens + CompletionTokens.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewUsage builds a Usage with a consistent total.
func NewUsage(prompt, completion int) *Usage {
	return &Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// ProviderResponse is the normalized reply shape shared by every provider.
type ProviderResponse struct {
	// Content is nil when the model produced no text.
	Content   *string    `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls"`
	// Usage is nil when the backend reported no token counts.
	Usage        *Usage          `json:"usage"`
	Model        string          `json:"model"`
	Provider     string          `json:"provider"`
	RawResponse  json.RawMessage `json:"raw_response,omitempty"`
	FinishReason string          `json:"finish_reason"`
}

// Text returns the content or "" when absent.
func (r *ProviderResponse) Text() string {
	if r == nil || r.Content == nil {
		return ""
	}
	return *r.Content
}

// ToolNames lists the names of the returned tool calls in order.
func (r *ProviderResponse) ToolNames() []string {
	names := make([]string, 0, len(r.ToolCalls))
	for _, tc := range r.ToolCalls {
		names = append(names, tc.Name)
	}
	return names
}

// GenerateOptions carries the recognized generation parameters.
// A nil field means the caller did not supply it.
type GenerateOptions struct {
	Temperature *float64
	TopP        *float64
	TopK        *int
}

// Float returns a pointer to v, for filling GenerateOptions.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for filling GenerateOptions.
func Int(v int) *int { return &v }

// toolCallID synthesizes an ID for a tool call that arrived without one.
func toolCallID(index int) string {
	return fmt.Sprintf("ollama_tool_%d", index)
}
