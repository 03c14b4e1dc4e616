// Provider configuration - backend connection and sampling parameters.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/compresr/liteagent/internal/adapters"
)

// ProviderConfig selects the backend and model.
type ProviderConfig struct {
	Name    string        `yaml:"name"`    // Provider name, "ollama"
	Model   string        `yaml:"model"`   // "llama3.1:8b" or "ollama/llama3.1:8b"
	Host    string        `yaml:"host"`    // Server URL
	Timeout time.Duration `yaml:"timeout"` // Per-request timeout
	APIKey  string        `yaml:"api_key"` // Unused by local servers, kept for parity
}

func (p *ProviderConfig) applyDefaults() {
	if p.Name == "" {
		p.Name = adapters.ProviderOllama
	}
	if p.Host == "" {
		p.Host = adapters.DefaultOllamaHost
	}
	if p.Timeout == 0 {
		p.Timeout = adapters.DefaultOllamaTimeout
	}
}

// Validate checks the provider section.
func (p *ProviderConfig) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return errors.New("provider.model is required")
	}
	if p.Timeout < 0 {
		return fmt.Errorf("invalid provider.timeout: %s (must be positive)", p.Timeout)
	}
	host := p.Host
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid provider.host: %q", p.Host)
	}
	return nil
}

// Spec returns the "provider/model" string for Registry.Create. A model that
// already names its provider is returned unchanged.
func (p *ProviderConfig) Spec() string {
	if strings.Contains(p.Model, "/") || p.Name == "" {
		return p.Model
	}
	return p.Name + "/" + p.Model
}

// Settings returns the factory settings mapping.
func (p *ProviderConfig) Settings() map[string]any {
	settings := map[string]any{}
	if p.Host != "" {
		settings["host"] = p.Host
	}
	if p.Timeout > 0 {
		settings["timeout"] = p.Timeout
	}
	return settings
}

// GenerationConfig holds sampling parameters. Unset fields are not sent.
type GenerationConfig struct {
	Temperature *float64 `yaml:"temperature"`
	TopP        *float64 `yaml:"top_p"`
	TopK        *int     `yaml:"top_k"`
}

// Validate checks the generation section.
func (g *GenerationConfig) Validate() error {
	if g.Temperature != nil && *g.Temperature < 0 {
		return fmt.Errorf("invalid generation.temperature: %v (must be >= 0)", *g.Temperature)
	}
	if g.TopP != nil && (*g.TopP < 0 || *g.TopP > 1) {
		return fmt.Errorf("invalid generation.top_p: %v (must be 0-1)", *g.TopP)
	}
	if g.TopK != nil && *g.TopK < 0 {
		return fmt.Errorf("invalid generation.top_k: %d (must be >= 0)", *g.TopK)
	}
	return nil
}

// Options converts the section to adapter generation options.
func (g *GenerationConfig) Options() adapters.GenerateOptions {
	return adapters.GenerateOptions{
		Temperature: g.Temperature,
		TopP:        g.TopP,
		TopK:        g.TopK,
	}
}
