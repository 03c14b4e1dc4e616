// Package capabilities answers "what can this model do" for provider adapters.
//
// DESIGN: Two sources share one index (exact name, aliases, fuzzy match):
//   - Static:   table loaded from YAML, never changes after construction
//   - Detector: models.dev catalogue fetched over HTTP and cached with a TTL
//
// A lookup miss returns nil; callers treat that as "unknown" and fall back to
// conservative answers (no parallel tools, no known limits).
package capabilities

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Pricing is USD per 1M tokens.
type Pricing struct {
	Input  float64 `yaml:"input" json:"input"`
	Output float64 `yaml:"output" json:"output"`
}

// ModelCapabilities describes a model's features and limits.
// Zero limits mean unknown.
type ModelCapabilities struct {
	ModelID               string    `yaml:"model_id" json:"model_id"`
	Name                  string    `yaml:"name" json:"name"`
	Provider              string    `yaml:"provider" json:"provider"`
	ToolCalling           bool      `yaml:"tool_calling" json:"tool_calling"`
	Reasoning             bool      `yaml:"reasoning" json:"reasoning"`
	Multimodal            bool      `yaml:"multimodal" json:"multimodal"`
	ContextLimit          int       `yaml:"context_limit" json:"context_limit,omitempty"`
	OutputLimit           int       `yaml:"output_limit" json:"output_limit,omitempty"`
	SupportsStreaming     bool      `yaml:"supports_streaming" json:"supports_streaming"`
	SupportsParallelTools bool      `yaml:"supports_parallel_tools" json:"supports_parallel_tools"`
	SupportsImageInput    bool      `yaml:"supports_image_input" json:"supports_image_input"`
	SupportsImageOutput   bool      `yaml:"supports_image_output" json:"supports_image_output"`
	SupportsCaching       bool      `yaml:"supports_caching" json:"supports_caching"`
	SupportsJSONMode      bool      `yaml:"supports_json_mode" json:"supports_json_mode"`
	SupportsSystemPrompt  bool      `yaml:"supports_system_prompt" json:"supports_system_prompt"`
	Pricing               *Pricing  `yaml:"pricing,omitempty" json:"pricing,omitempty"`
	LastUpdated           time.Time `yaml:"-" json:"last_updated,omitempty"`
}

// maxFuzzyLengthDiff bounds how different two names may be in length and
// still fuzzy-match.
const maxFuzzyLengthDiff = 10

// index maps model names and aliases to capabilities, remembering insertion
// order so fuzzy matching is deterministic.
type index struct {
	byName map[string]*ModelCapabilities
	order  []string
}

func newIndex() *index {
	return &index{byName: make(map[string]*ModelCapabilities)}
}

func (ix *index) put(name string, c *ModelCapabilities) {
	if _, exists := ix.byName[name]; !exists {
		ix.order = append(ix.order, name)
	}
	ix.byName[name] = c
}

// add registers a model under its ID plus the common alias:
// "provider/model" gains "model", a bare "model" gains "provider/model".
func (ix *index) add(c *ModelCapabilities) {
	ix.put(c.ModelID, c)
	if i := strings.Index(c.ModelID, "/"); i != -1 {
		ix.put(c.ModelID[i+1:], c)
		return
	}
	if c.Provider != "" {
		ix.put(c.Provider+"/"+c.ModelID, c)
	}
}

func (ix *index) lookup(model string, logger zerolog.Logger) *ModelCapabilities {
	if c, ok := ix.byName[model]; ok {
		return copyOf(c)
	}

	modelLower := strings.ToLower(model)
	for _, name := range ix.order {
		cachedLower := strings.ToLower(name)
		if !strings.Contains(cachedLower, modelLower) && !strings.Contains(modelLower, cachedLower) {
			continue
		}
		if abs(len(modelLower)-len(cachedLower)) < maxFuzzyLengthDiff {
			logger.Info().Str("model", model).Str("matched", name).Msg("fuzzy matched model capabilities")
			return copyOf(ix.byName[name])
		}
	}
	return nil
}

// unique returns each distinct record once, ordered by model ID.
func (ix *index) unique(keep func(*ModelCapabilities) bool) []ModelCapabilities {
	seen := make(map[*ModelCapabilities]bool)
	var out []ModelCapabilities
	for _, name := range ix.order {
		c := ix.byName[name]
		if seen[c] || !keep(c) {
			continue
		}
		seen[c] = true
		out = append(out, *copyOf(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out
}

func copyOf(c *ModelCapabilities) *ModelCapabilities {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Pricing != nil {
		p := *c.Pricing
		cp.Pricing = &p
	}
	return &cp
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
