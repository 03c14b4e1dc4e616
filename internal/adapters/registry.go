// Registry manages provider factories.
//
// DESIGN: Thread-safe map of provider name -> Factory.
// Built-in providers (Ollama) are registered by DefaultRegistry.
package adapters

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrUnknownProvider is returned by Create for an unregistered provider name.
var ErrUnknownProvider = errors.New("unknown provider")

// Factory builds a provider for a model. settings carries provider-specific
// configuration (e.g. "host", "timeout").
type Factory func(model, apiKey string, settings map[string]any, opts ...Option) (Provider, error)

// Registry manages provider registration.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// DefaultRegistry creates a registry with all built-in providers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ProviderOllama, NewOllamaFromSettings)
	return r
}

// Register adds a factory under name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = f
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[strings.ToLower(name)]
	return f, ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds a provider from "provider/model" or a bare model name.
// A bare name uses Ollama, the only local backend.
func (r *Registry) Create(spec, apiKey string, settings map[string]any, opts ...Option) (Provider, error) {
	provider, model := ParseModelSpec(spec)
	if model == "" {
		return nil, fmt.Errorf("model is required in %q", spec)
	}
	f, ok := r.Get(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return f(model, apiKey, settings, opts...)
}

// ParseModelSpec splits "provider/model". Only the first slash separates the
// provider, so "ollama/library/llama3" keeps "library/llama3" as the model.
// Ollama tags such as "llama3.1:8b" contain no slash and default to Ollama.
func ParseModelSpec(spec string) (provider, model string) {
	spec = strings.TrimSpace(spec)
	if before, after, ok := strings.Cut(spec, "/"); ok {
		return strings.ToLower(before), after
	}
	return ProviderOllama, spec
}

// NewOllamaFromSettings is the Ollama Factory. Recognized settings:
//   - host:    server URL (default $OLLAMA_HOST, then DefaultOllamaHost)
//   - timeout: seconds as a number, or a duration string ("90s")
func NewOllamaFromSettings(model, apiKey string, settings map[string]any, opts ...Option) (Provider, error) {
	cfg := OllamaConfig{Timeout: DefaultOllamaTimeout}

	cfg.Host = getString(settings, "host")
	if cfg.Host == "" {
		cfg.Host = os.Getenv("OLLAMA_HOST")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultOllamaHost
	}

	if raw, ok := settings["timeout"]; ok {
		timeout, err := parseTimeout(raw)
		if err != nil {
			return nil, fmt.Errorf("ollama: invalid timeout: %w", err)
		}
		cfg.Timeout = timeout
	}

	adapter, err := NewOllamaAdapter(model, apiKey, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

func parseTimeout(v any) (time.Duration, error) {
	var d time.Duration
	switch t := v.(type) {
	case int:
		d = time.Duration(t) * time.Second
	case int64:
		d = time.Duration(t) * time.Second
	case float64:
		d = time.Duration(t * float64(time.Second))
	case time.Duration:
		d = t
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			return 0, err
		}
		d = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
