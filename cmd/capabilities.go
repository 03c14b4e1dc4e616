package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/compresr/liteagent/internal/capabilities"
	"github.com/compresr/liteagent/internal/config"
)

func runCapabilities(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("capabilities", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	source := fs.String("source", "", "capability source: static or models_dev (default from config, else models_dev)")
	provider := fs.String("provider", "", "only list models of this provider")
	toolsOnly := fs.Bool("tools-only", false, "only list models with tool calling")
	jsonOutput := fs.Bool("json", false, "print capabilities as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *source != "" {
		cfg.Capabilities.Source = strings.ToLower(*source)
	}
	if cfg.Capabilities.Source == config.CapabilitiesNone {
		cfg.Capabilities.Source = config.CapabilitiesModelsDev
	}
	if err := cfg.Capabilities.Validate(); err != nil {
		return err
	}

	lookup, err := cfg.Capabilities.Lookup(log.Logger)
	if err != nil {
		return err
	}

	var models []capabilities.ModelCapabilities
	if names := fs.Args(); len(names) > 0 {
		for _, name := range names {
			c := lookup.Lookup(name)
			if c == nil {
				return fmt.Errorf("no capabilities known for %q", name)
			}
			models = append(models, *c)
		}
	} else {
		models, err = listCapabilities(lookup, *provider, *toolsOnly)
		if err != nil {
			return err
		}
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}
	return printCapabilities(stdout, models)
}

// listCapabilities lists the whole source, filtered by provider and tool support.
func listCapabilities(lookup any, provider string, toolsOnly bool) ([]capabilities.ModelCapabilities, error) {
	var all []capabilities.ModelCapabilities
	switch src := lookup.(type) {
	case *capabilities.Detector:
		// Lookups swallow fetch errors; listing the catalogue should not.
		if err := src.Refresh(context.Background()); err != nil {
			return nil, err
		}
		switch {
		case provider != "":
			all = src.ModelsByProvider(provider)
		case toolsOnly:
			all = src.ToolCallingModels()
		default:
			all = src.Models()
		}
	case *capabilities.Static:
		all = src.Models()
	default:
		return nil, fmt.Errorf("capability source %T cannot be listed", lookup)
	}

	out := all[:0]
	for _, m := range all {
		if provider != "" && !strings.EqualFold(m.Provider, provider) {
			continue
		}
		if toolsOnly && !m.ToolCalling {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func printCapabilities(w io.Writer, models []capabilities.ModelCapabilities) error {
	if len(models) == 0 {
		fmt.Fprintln(w, "No matching models.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tPROVIDER\tTOOLS\tPARALLEL\tCONTEXT\tOUTPUT\tPRICE IN/OUT")
	for _, m := range models {
		price := "-"
		if m.Pricing != nil {
			price = fmt.Sprintf("$%g/$%g", m.Pricing.Input, m.Pricing.Output)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ModelID,
			orDash(m.Provider),
			yesNo(m.ToolCalling),
			yesNo(m.SupportsParallelTools),
			limit(m.ContextLimit),
			limit(m.OutputLimit),
			price,
		)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func limit(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
