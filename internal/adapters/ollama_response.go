package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/compresr/liteagent/internal/monitoring"
)

// ConvertResponse normalizes an /api/chat reply.
//
// Ollama format:
//
//	{"model": "...", "message": {"content": "...", "tool_calls": [...]},
//	 "done_reason": "stop", "prompt_eval_count": N, "eval_count": N}
//
// A body that is not a JSON object (a proxy error page, a truncated reply)
// fails with ErrInvalidResponse. Malformed tool call arguments only become
// {} with a warning.
func (a *OllamaAdapter) ConvertResponse(raw []byte) (*ProviderResponse, error) {
	reply := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !reply.IsObject() {
		return nil, fmt.Errorf("failed to parse %s response (%d bytes): %w", a.name, len(raw), ErrInvalidResponse)
	}

	resp := &ProviderResponse{
		ToolCalls:    []ToolCall{},
		Model:        a.model,
		Provider:     a.name,
		FinishReason: "stop",
		RawResponse:  json.RawMessage(raw),
	}

	if content := reply.Get("message.content").String(); content != "" {
		resp.Content = &content
	}

	if calls := reply.Get("message.tool_calls"); calls.IsArray() {
		for _, tc := range calls.Array() {
			arguments := map[string]any{}
			if args := tc.Get("function.arguments"); args.Exists() {
				var err error
				arguments, err = decodeArguments(args)
				if err != nil {
					a.argumentFallback(monitoring.StageResponse, args.Raw, err)
				}
			}

			id := tc.Get("id").String()
			if id == "" {
				id = toolCallID(len(resp.ToolCalls))
			}
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				ID:        id,
				Name:      tc.Get("function.name").String(),
				Arguments: arguments,
			})
		}
	}

	prompt := reply.Get("prompt_eval_count")
	completion := reply.Get("eval_count")
	if prompt.Exists() || completion.Exists() {
		resp.Usage = NewUsage(int(prompt.Int()), int(completion.Int()))
	}

	if model := reply.Get("model").String(); model != "" {
		resp.Model = model
	}
	if reason := reply.Get("done_reason").String(); reason != "" {
		resp.FinishReason = reason
	}

	return resp, nil
}
