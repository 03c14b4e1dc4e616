package adapters

import (
	"fmt"
	"strings"

	"github.com/compresr/liteagent/internal/monitoring"
)

// toolCallMarker must appear (quotes included) for text extraction to run.
const toolCallMarker = `"tool_call"`

const toolPromptTemplate = `
You have access to the following tools. To use a tool, respond with a JSON object in this exact format:
{"tool_call": {"name": "tool_name", "arguments": {"param1": "value1", "param2": "value2"}}}

Available tools:
%s

If you don't need to use any tools, respond normally without the JSON format.
`

// ConvertTools maps tool definitions to Ollama's format.
// OpenAI-style entries ({"function": {...}}) are wrapped as
// {"type": "function", "function": {...}}; anything else passes through.
func ConvertTools(tools []ToolDefinition) []ToolDefinition {
	out := make([]ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		if fn, ok := tool["function"]; ok {
			out = append(out, ToolDefinition{
				"type":     "function",
				"function": fn,
			})
			continue
		}
		out = append(out, tool)
	}
	return out
}

// EmbedToolsInPrompt describes tools inside the system prompt for models
// without native tool calling. The instructions are appended to a leading
// system message with text content, otherwise a new system message is
// prepended. Neither the slice nor its messages are modified.
func EmbedToolsInPrompt(messages []Message, tools []ToolDefinition) []Message {
	blocks := make([]string, 0, len(tools))
	for _, tool := range tools {
		fn := map[string]any(tool)
		if nested, ok := tool["function"].(map[string]any); ok {
			fn = nested
		}

		var parameters any = map[string]any{}
		if p, ok := fn["parameters"]; ok {
			parameters = p
		}
		rendered, err := prettyJSON(parameters)
		if err != nil {
			rendered = fmt.Sprint(parameters)
		}

		blocks = append(blocks, fmt.Sprintf("Tool: %s\nDescription: %s\nParameters: %s",
			valueOr(fn, "name", "unknown"),
			valueOr(fn, "description", "No description available"),
			rendered,
		))
	}
	prompt := fmt.Sprintf(toolPromptTemplate, strings.Join(blocks, "\n"))

	if len(messages) > 0 && messages[0].Role() == RoleSystem && hasTextContent(messages[0]) {
		out := make([]Message, len(messages))
		copy(out, messages)
		system := cloneMessage(messages[0])
		system["content"] = system.Content() + prompt
		out[0] = system
		return out
	}

	out := make([]Message, 0, len(messages)+1)
	out = append(out, NewMessage(RoleSystem, prompt))
	return append(out, messages...)
}

// hasTextContent reports whether content is a string or missing. Structured
// content (a list of parts) cannot take the prompt as a suffix.
func hasTextContent(m Message) bool {
	content, ok := m["content"]
	if !ok || content == nil {
		return true
	}
	_, isText := content.(string)
	return isText
}

// ExtractToolCallsFromText finds tool calls a model wrote as text in the
// format requested by EmbedToolsInPrompt, one JSON object per line.
//
// A line that mentions "tool_call" but is not a JSON object is an error;
// nothing is skipped silently.
func (a *OllamaAdapter) ExtractToolCallsFromText(text string) ([]ToolCall, error) {
	calls := []ToolCall{}
	if !strings.Contains(text, toolCallMarker) {
		return calls, nil
	}

	for n, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, toolCallMarker) {
			continue
		}

		var data map[string]any
		if err := decodeJSON([]byte(strings.TrimSpace(line)), &data); err != nil {
			return nil, fmt.Errorf("line %d: invalid tool call JSON: %w", n+1, err)
		}
		raw, ok := data["tool_call"]
		if !ok {
			continue
		}
		call, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("line %d: tool_call is %s, not an object", n+1, jsonKind(raw))
		}

		arguments := map[string]any{}
		if args, ok := call["arguments"]; ok {
			var err error
			arguments, err = coerceArguments(args)
			if err != nil {
				a.argumentFallback(monitoring.StageText, fmt.Sprint(args), err)
			}
		}

		calls = append(calls, ToolCall{
			ID:        toolCallID(len(calls)),
			Name:      getString(call, "name"),
			Arguments: arguments,
		})
	}
	return calls, nil
}
