package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/compresr/liteagent/external"
)

func runModels(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	jsonOutput := fs.Bool("json", false, "print the model list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}

	client, err := external.NewOllamaClient(external.Config{
		Host:    cfg.Provider.Host,
		Timeout: cfg.Provider.Timeout,
	})
	if err != nil {
		return err
	}

	models, err := client.ListModels(context.Background())
	if err != nil {
		return err
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}

	if len(models) == 0 {
		fmt.Fprintf(stdout, "No models installed on %s. Pull one with: ollama pull llama3.1\n", client.BaseURL())
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tPARAMS\tQUANT\tMODIFIED")
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.Name,
			formatSize(m.Size),
			orDash(m.Details.ParameterSize),
			orDash(m.Details.QuantizationLevel),
			orDash(shortDate(m.ModifiedAt)),
		)
	}
	return w.Flush()
}

// formatSize renders a byte count the way `ollama list` does.
func formatSize(n int64) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
