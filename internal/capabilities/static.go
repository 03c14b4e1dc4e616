package capabilities

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Static is a fixed capability table.
type Static struct {
	ix     *index
	logger zerolog.Logger
}

// NewStatic builds a table from the given records.
func NewStatic(models ...ModelCapabilities) *Static {
	s := &Static{ix: newIndex(), logger: log.Logger}
	for i := range models {
		c := models[i]
		s.ix.add(&c)
	}
	return s
}

// staticFile is the YAML layout of a capability table.
type staticFile struct {
	Models []ModelCapabilities `yaml:"models"`
}

// LoadStatic parses a YAML capability table:
//
//	models:
//	  - model_id: llama3.1:8b
//	    provider: ollama
//	    tool_calling: true
//	    context_limit: 131072
func LoadStatic(data []byte) (*Static, error) {
	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse capability table: %w", err)
	}
	for i, m := range f.Models {
		if m.ModelID == "" {
			return nil, fmt.Errorf("capability table entry %d: model_id is required", i)
		}
	}
	return NewStatic(f.Models...), nil
}

// LoadStaticFile reads a YAML capability table from disk.
func LoadStaticFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capability table '%s': %w", path, err)
	}
	return LoadStatic(data)
}

// Lookup returns the capabilities for model, or nil when unknown.
func (s *Static) Lookup(model string) *ModelCapabilities {
	return s.ix.lookup(model, s.logger)
}

// Models returns every distinct record in the table.
func (s *Static) Models() []ModelCapabilities {
	return s.ix.unique(func(*ModelCapabilities) bool { return true })
}
