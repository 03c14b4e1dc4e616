// Package config loads and validates the liteagent configuration.
//
// DESIGN: YAML file with ${VAR:-default} expansion, then environment
// overrides, then defaults for anything left unset, then validation.
// A missing file is not an error for the CLI; Default() is used instead.
//
// FILES:
//   - config.go:       Root Config struct, Load(), Validate()
//   - provider.go:     Provider connection and generation parameters
//   - capabilities.go: Capability source (none, static table, models.dev)
//   - monitoring.go:   Logging settings and preflight token estimation
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Provider     ProviderConfig     `yaml:"provider"`     // Backend connection
	Generation   GenerationConfig   `yaml:"generation"`   // Sampling parameters
	Capabilities CapabilitiesConfig `yaml:"capabilities"` // Model metadata source
	Preflight    PreflightConfig    `yaml:"preflight"`    // Prompt size estimation
	Monitoring   MonitoringConfig   `yaml:"monitoring"`   // Logging
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands environment variables with support for default values.
// Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// ExpandEnvWithDefaults expands environment variables with support for default values.
func ExpandEnvWithDefaults(s string) string {
	return expandEnvWithDefaults(s)
}

// Default returns a configuration with every default applied and no file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnvOverrides()
	return cfg.WithDefaults()
}

// Load reads configuration from a YAML file.
// Returns an error if the file doesn't exist or is invalid.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes.
// Supports ${VAR:-default} env var expansion, env overrides, defaults and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse is LoadFromBytes without validation, for callers that layer
// command-line flags on top before validating.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvWithDefaults(string(data))

	var cfg Config
	if err := decodeYAML([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg.WithDefaults(), nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		c.Provider.Host = host
	}
	if model := os.Getenv("LITEAGENT_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if level := os.Getenv("LITEAGENT_LOG_LEVEL"); level != "" {
		c.Monitoring.LogLevel = level
	}
}

// WithDefaults fills unset fields in place and returns c.
func (c *Config) WithDefaults() *Config {
	c.Provider.applyDefaults()
	c.Capabilities.applyDefaults()
	c.Preflight.applyDefaults()
	c.Monitoring.applyDefaults()
	return c
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Provider.Validate(); err != nil {
		return err
	}
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	if err := c.Capabilities.Validate(); err != nil {
		return err
	}
	if err := c.Preflight.Validate(); err != nil {
		return err
	}
	return c.Monitoring.Validate()
}

// decodeYAML rejects unknown keys so typos surface instead of silently
// falling back to defaults. An empty document is valid.
func decodeYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}
