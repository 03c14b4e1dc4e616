// Capabilities configuration - where model metadata comes from.
//
// DESIGN: Three sources:
//   - none:       empty table; limits unknown, tool calling still reported
//   - static:     YAML table from static_path and/or inline models
//   - models_dev: live catalogue with a TTL cache
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/compresr/liteagent/internal/adapters"
	"github.com/compresr/liteagent/internal/capabilities"
)

// Capability sources.
const (
	CapabilitiesNone      = "none"
	CapabilitiesStatic    = "static"
	CapabilitiesModelsDev = "models_dev"
)

// CapabilitiesConfig selects the capability lookup.
type CapabilitiesConfig struct {
	Source       string                           `yaml:"source"`        // none, static, models_dev
	URL          string                           `yaml:"url"`           // models.dev catalogue URL
	CacheTTL     time.Duration                    `yaml:"cache_ttl"`     // Catalogue refresh interval
	FetchTimeout time.Duration                    `yaml:"fetch_timeout"` // Catalogue download timeout
	StaticPath   string                           `yaml:"static_path"`   // YAML capability table
	Models       []capabilities.ModelCapabilities `yaml:"models"`        // Inline capability records
}

func (c *CapabilitiesConfig) applyDefaults() {
	if c.Source == "" {
		c.Source = CapabilitiesNone
		if c.StaticPath != "" || len(c.Models) > 0 {
			c.Source = CapabilitiesStatic
		}
	}
	c.Source = strings.ToLower(c.Source)
	if c.URL == "" {
		c.URL = capabilities.DefaultModelsDevURL
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = capabilities.DefaultCacheTTL
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = capabilities.DefaultFetchTimeout
	}
}

// Validate checks the capabilities section.
func (c *CapabilitiesConfig) Validate() error {
	switch c.Source {
	case CapabilitiesNone:
	case CapabilitiesStatic:
		if c.StaticPath == "" && len(c.Models) == 0 {
			return fmt.Errorf("capabilities.static_path or capabilities.models is required for source %q", c.Source)
		}
		for i, m := range c.Models {
			if m.ModelID == "" {
				return fmt.Errorf("capabilities.models[%d].model_id is required", i)
			}
		}
	case CapabilitiesModelsDev:
		u, err := url.Parse(c.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid capabilities.url: %q", c.URL)
		}
	default:
		return fmt.Errorf("invalid capabilities.source: %q (must be none, static or models_dev)", c.Source)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid capabilities.cache_ttl: %s", c.CacheTTL)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("invalid capabilities.fetch_timeout: %s", c.FetchTimeout)
	}
	return nil
}

// Lookup builds the configured capability lookup.
func (c *CapabilitiesConfig) Lookup(logger zerolog.Logger) (adapters.CapabilityLookup, error) {
	switch c.Source {
	case CapabilitiesModelsDev:
		return capabilities.NewDetector(
			capabilities.WithURL(c.URL),
			capabilities.WithTTL(c.CacheTTL),
			capabilities.WithFetchTimeout(c.FetchTimeout),
			capabilities.WithLogger(logger),
		), nil
	case CapabilitiesStatic:
		var models []capabilities.ModelCapabilities
		if c.StaticPath != "" {
			table, err := capabilities.LoadStaticFile(c.StaticPath)
			if err != nil {
				return nil, err
			}
			models = table.Models()
		}
		models = append(models, c.Models...)
		return capabilities.NewStatic(models...), nil
	default:
		return capabilities.NewStatic(), nil
	}
}
