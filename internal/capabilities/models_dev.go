package capabilities

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Substrings of model IDs known to handle parallel tool calls.
var parallelToolModels = []string{"gpt-4", "claude-3.5", "claude-4", "gemini", "llama-3.1", "gemini-2"}

// Substrings of model IDs known to support a JSON response mode.
var jsonModeModels = []string{"gpt-4", "gpt-3.5-turbo", "claude-3", "gemini"}

// parseModelsDev converts the models.dev catalogue:
//
//	{"<provider>": {"models": {"<id>": {"name", "tool_call", "reasoning",
//	  "modalities": {"input": [...], "output": [...]},
//	  "limit": {"context", "output"}, "cost": {"input", "output"}}}}}
//
// Entries that are not objects are skipped.
func parseModelsDev(body []byte, now time.Time) []ModelCapabilities {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil
	}

	var out []ModelCapabilities
	root.ForEach(func(provider, providerData gjson.Result) bool {
		if !providerData.IsObject() {
			return true
		}
		models := providerData.Get("models")
		if !models.IsObject() {
			return true
		}
		models.ForEach(func(id, info gjson.Result) bool {
			if info.IsObject() {
				out = append(out, parseModelInfo(provider.String(), id.String(), info, now))
			}
			return true
		})
		return true
	})
	return out
}

func parseModelInfo(provider, modelID string, info gjson.Result, now time.Time) ModelCapabilities {
	name := info.Get("name").String()
	if name == "" {
		name = modelID
	}
	toolCalling := info.Get("tool_call").Bool()

	var inputs, outputs []string
	for _, m := range info.Get("modalities.input").Array() {
		inputs = append(inputs, m.String())
	}
	for _, m := range info.Get("modalities.output").Array() {
		outputs = append(outputs, m.String())
	}
	imageIn := contains(inputs, "image")

	idLower := strings.ToLower(modelID)
	providerLower := strings.ToLower(provider)

	caps := ModelCapabilities{
		ModelID:               modelID,
		Name:                  name,
		Provider:              provider,
		ToolCalling:           toolCalling,
		Reasoning:             info.Get("reasoning").Bool(),
		Multimodal:            len(inputs) > 1 || imageIn,
		ContextLimit:          int(info.Get("limit.context").Int()),
		OutputLimit:           int(info.Get("limit.output").Int()),
		SupportsStreaming:     true,
		SupportsParallelTools: toolCalling && containsAny(idLower, parallelToolModels),
		SupportsImageInput:    imageIn,
		SupportsImageOutput:   contains(outputs, "image"),
		SupportsCaching: (providerLower == "anthropic" && strings.Contains(idLower, "claude-3")) ||
			(providerLower == "openai" && strings.Contains(idLower, "gpt-4")),
		SupportsJSONMode:     toolCalling && containsAny(idLower, jsonModeModels),
		SupportsSystemPrompt: true,
		LastUpdated:          now,
	}

	if cost := info.Get("cost"); cost.IsObject() && len(cost.Map()) > 0 {
		caps.Pricing = &Pricing{
			Input:  cost.Get("input").Float(),
			Output: cost.Get("output").Float(),
		}
	}
	return caps
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
