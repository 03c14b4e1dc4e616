package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/compresr/liteagent/internal/monitoring"
)

// PreprocessMessages returns a deep copy of messages in which every
// tool_calls[].function.arguments is an object.
//
// Conversation memory stores arguments as JSON strings; Ollama rejects them
// unless they are objects. Strings are decoded, anything that cannot become
// an object is replaced with {} and logged. The input is never modified.
func (a *OllamaAdapter) PreprocessMessages(messages []Message) []Message {
	if len(messages) == 0 {
		return []Message{}
	}

	body, err := json.Marshal(messages)
	if err != nil {
		a.logger.Warn().Err(err).Msg("messages are not JSON-serializable, sending a plain copy")
		return cloneMessages(messages)
	}

	// Iterate a snapshot; body is rewritten as arguments are fixed.
	for mi, msg := range gjson.ParseBytes(body).Array() {
		calls := msg.Get("tool_calls")
		if !calls.IsArray() {
			continue
		}
		for ci, call := range calls.Array() {
			args := call.Get("function.arguments")
			if !args.Exists() || args.IsObject() {
				continue
			}

			path := fmt.Sprintf("%d.tool_calls.%d.function.arguments", mi, ci)
			fixed, convErr := decodeArguments(args)
			if convErr != nil {
				a.argumentFallback(monitoring.StageRequest, args.Raw, convErr)
			} else {
				a.logger.Debug().
					Str("arguments", args.String()).
					Msg("converted string tool call arguments to an object")
			}

			updated, setErr := sjson.SetBytes(body, path, fixed)
			if setErr != nil {
				a.logger.Warn().Err(setErr).Str("path", path).Msg("failed to rewrite tool call arguments")
				continue
			}
			body = updated
		}
	}

	var out []Message
	if err := decodeJSON(body, &out); err != nil {
		a.logger.Warn().Err(err).Msg("failed to decode normalized messages, sending a plain copy")
		return cloneMessages(messages)
	}
	return out
}

// decodeArguments decodes a raw arguments value and coerces it to an object.
func decodeArguments(args gjson.Result) (map[string]any, error) {
	var v any
	if err := decodeJSON([]byte(args.Raw), &v); err != nil {
		return map[string]any{}, err
	}
	return coerceArguments(v)
}

// coerceArguments turns a decoded arguments value into an object. The
// returned map is never nil; err explains why {} was used instead.
func coerceArguments(v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case string:
		var decoded any
		if err := decodeJSON([]byte(t), &decoded); err != nil {
			return map[string]any{}, err
		}
		if m, ok := decoded.(map[string]any); ok {
			return m, nil
		}
		return map[string]any{}, fmt.Errorf("arguments decode to %s, not an object", jsonKind(decoded))
	default:
		return map[string]any{}, fmt.Errorf("arguments are %s, not a string or object", jsonKind(v))
	}
}

// jsonKind names the JSON type of a decoded value.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64, json.Number:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func (a *OllamaAdapter) argumentFallback(stage, raw string, err error) {
	a.logger.Warn().
		Err(err).
		Str("stage", stage).
		Str("arguments", raw).
		Msg("failed to parse tool call arguments, using {}")
	a.metrics.RecordArgumentFallback(a.name, stage)
}
