// Monitoring configuration - logging and preflight estimation.
//
// DESIGN: Logging goes through zerolog. Console output for terminals,
// JSON for pipes and log shippers.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/compresr/liteagent/internal/monitoring"
	"github.com/compresr/liteagent/internal/tokens"
)

// LogFormatAuto picks console output on a terminal and JSON otherwise.
const LogFormatAuto = "auto"

// MonitoringConfig contains logging settings.
type MonitoringConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json, console, auto (console on a terminal)
	LogOutput string `yaml:"log_output"` // stdout, stderr, or file path
}

func (m *MonitoringConfig) applyDefaults() {
	if m.LogLevel == "" {
		m.LogLevel = "info"
	}
	if m.LogFormat == "" {
		m.LogFormat = LogFormatAuto
	}
	if m.LogOutput == "" {
		m.LogOutput = "stderr"
	}
}

// Validate checks the monitoring section.
func (m *MonitoringConfig) Validate() error {
	if !oneOf(m.LogLevel, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid monitoring.log_level: %q", m.LogLevel)
	}
	if !oneOf(m.LogFormat, "json", "console", LogFormatAuto) {
		return fmt.Errorf("invalid monitoring.log_format: %q", m.LogFormat)
	}
	return nil
}

// LoggerConfig converts the section for monitoring.New. isTerminal resolves
// the auto format.
func (m *MonitoringConfig) LoggerConfig(isTerminal bool) monitoring.LoggerConfig {
	format := strings.ToLower(m.LogFormat)
	if format == LogFormatAuto {
		format = "json"
		if isTerminal {
			format = "console"
		}
	}
	return monitoring.LoggerConfig{
		Level:  strings.ToLower(m.LogLevel),
		Format: format,
		Output: m.LogOutput,
	}
}

// PreflightConfig controls the prompt size check before each request.
type PreflightConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Encoding      string `yaml:"encoding"`        // BPE encoding, cl100k_base by default
	BytesPerToken int    `yaml:"bytes_per_token"` // Fallback ratio
}

func (p *PreflightConfig) applyDefaults() {
	if p.Encoding == "" {
		p.Encoding = tokens.DefaultEncoding
	}
	if p.BytesPerToken == 0 {
		p.BytesPerToken = tokens.DefaultBytesPerToken
	}
}

// Validate checks the preflight section.
func (p *PreflightConfig) Validate() error {
	if p.BytesPerToken < 0 {
		return fmt.Errorf("invalid preflight.bytes_per_token: %d", p.BytesPerToken)
	}
	return nil
}

// Estimator returns the configured estimator, or nil when preflight is off.
func (p *PreflightConfig) Estimator(logger zerolog.Logger) tokens.Estimator {
	if !p.Enabled {
		return nil
	}
	return tokens.New(p.Encoding, p.BytesPerToken, logger)
}
