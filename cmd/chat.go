package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/compresr/liteagent/internal/adapters"
	"github.com/compresr/liteagent/internal/config"
	"github.com/compresr/liteagent/internal/monitoring"
	"github.com/compresr/liteagent/internal/tui"
)

// textToolExtractor is implemented by providers that can recover tool calls
// from plain text when tools were embedded in the system prompt.
type textToolExtractor interface {
	ExtractToolCallsFromText(text string) ([]adapters.ToolCall, error)
}

type chatOptions struct {
	common      commonFlags
	system      string
	toolsPath   string
	embedTools  bool
	jsonOutput  bool
	temperature *float64
	topP        *float64
	topK        *int
}

func (o *chatOptions) register(fs *flag.FlagSet) {
	o.common.register(fs)
	fs.StringVar(&o.system, "system", "", "system prompt")
	fs.StringVar(&o.toolsPath, "tools", "", "JSON file with an array of tool definitions")
	fs.BoolVar(&o.embedTools, "embed-tools", false, "describe tools in the system prompt instead of native tool calling")
	fs.BoolVar(&o.jsonOutput, "json", false, "print the normalized response as JSON")
	fs.Func("temperature", "sampling temperature", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		o.temperature = &v
		return err
	})
	fs.Func("top-p", "nucleus sampling", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		o.topP = &v
		return err
	})
	fs.Func("top-k", "top-k sampling", func(s string) error {
		v, err := strconv.Atoi(s)
		o.topK = &v
		return err
	})
}

// session holds one conversation with a provider.
type session struct {
	provider adapters.Provider
	tools    []adapters.ToolDefinition
	embed    bool
	gen      adapters.GenerateOptions
	history  []adapters.Message
	json     bool
	ui       *tui.Printer
}

func runChat(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	var opts chatOptions
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.common.load()
	if err != nil {
		return err
	}
	if opts.temperature != nil {
		cfg.Generation.Temperature = opts.temperature
	}
	if opts.topP != nil {
		cfg.Generation.TopP = opts.topP
	}
	if opts.topK != nil {
		cfg.Generation.TopK = opts.topK
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tools, err := loadTools(opts.toolsPath)
	if err != nil {
		return err
	}

	metrics := monitoring.NewMetricsCollector(nil)
	provider, err := buildProvider(cfg, metrics)
	if err != nil {
		return err
	}

	s := &session{
		provider: provider,
		tools:    tools,
		embed:    opts.embedTools,
		gen:      cfg.Generation.Options(),
		json:     opts.jsonOutput,
		ui:       tui.NewPrinter(stdout, tui.IsTerminal(stdout)),
	}
	if opts.system != "" {
		s.history = append(s.history, adapters.NewMessage(adapters.RoleSystem, opts.system))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	defer func() {
		log.Debug().Interface("stats", metrics.Stats()).Msg("session finished")
	}()

	if prompt := strings.TrimSpace(strings.Join(fs.Args(), " ")); prompt != "" {
		return s.send(ctx, prompt)
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return s.repl(ctx, stdin)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read prompt from stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return errors.New("no prompt given")
	}
	return s.send(ctx, prompt)
}

// buildProvider creates the configured provider through the registry.
func buildProvider(cfg *config.Config, metrics *monitoring.MetricsCollector) (adapters.Provider, error) {
	lookup, err := cfg.Capabilities.Lookup(log.Logger)
	if err != nil {
		return nil, err
	}

	opts := []adapters.Option{
		adapters.WithCapabilities(lookup),
		adapters.WithLogger(log.Logger),
		adapters.WithMetrics(metrics),
	}
	if est := cfg.Preflight.Estimator(log.Logger); est != nil {
		opts = append(opts, adapters.WithEstimator(est))
	}

	return adapters.DefaultRegistry().Create(cfg.Provider.Spec(), cfg.Provider.APIKey, cfg.Provider.Settings(), opts...)
}

// loadTools reads a JSON array of tool definitions. An empty path means no tools.
func loadTools(path string) ([]adapters.ToolDefinition, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tools file: %w", err)
	}
	var tools []adapters.ToolDefinition
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("failed to parse tools file %s: %w", path, err)
	}
	return tools, nil
}

func (s *session) repl(ctx context.Context, in io.Reader) error {
	s.ui.Banner(Version, s.provider.Model())

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		s.ui.Prompt()
		if !scanner.Scan() {
			s.ui.Newline()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := s.send(ctx, line); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.ui.Error(err.Error())
		}
	}
}

// send runs one turn and records it in the history.
func (s *session) send(ctx context.Context, prompt string) error {
	s.history = append(s.history, adapters.NewMessage(adapters.RoleUser, prompt))

	messages, tools := s.history, s.tools
	if s.embed && len(tools) > 0 {
		messages = adapters.EmbedToolsInPrompt(messages, tools)
		tools = nil
	}

	resp, err := s.provider.GenerateResponse(ctx, messages, tools, s.gen)
	if err != nil {
		s.history = s.history[:len(s.history)-1]
		return err
	}

	if s.embed && len(resp.ToolCalls) == 0 {
		if ex, ok := s.provider.(textToolExtractor); ok {
			calls, err := ex.ExtractToolCallsFromText(resp.Text())
			if err != nil {
				log.Warn().Err(err).Msg("failed to extract tool calls from text")
			} else {
				resp.ToolCalls = calls
			}
		}
	}

	s.history = append(s.history, assistantMessage(resp))
	return s.print(resp)
}

// assistantMessage turns a reply into history. Arguments are stored as JSON
// strings, the shape most providers send back.
func assistantMessage(resp *adapters.ProviderResponse) adapters.Message {
	msg := adapters.NewMessage(adapters.RoleAssistant, resp.Text())
	if len(resp.ToolCalls) == 0 {
		return msg
	}
	calls := make([]any, 0, len(resp.ToolCalls))
	for _, tc := range resp.ToolCalls {
		args, err := json.Marshal(tc.Arguments)
		if err != nil {
			args = []byte("{}")
		}
		calls = append(calls, map[string]any{
			"id":   tc.ID,
			"type": "function",
			"function": map[string]any{
				"name":      tc.Name,
				"arguments": string(args),
			},
		})
	}
	msg["tool_calls"] = calls
	return msg
}

func (s *session) print(resp *adapters.ProviderResponse) error {
	if s.json {
		enc := json.NewEncoder(s.ui.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	s.ui.Assistant(resp.Text())
	for _, tc := range resp.ToolCalls {
		args, err := json.Marshal(tc.Arguments)
		if err != nil {
			return fmt.Errorf("failed to encode arguments of %s: %w", tc.Name, err)
		}
		s.ui.ToolCall(tc.ID, tc.Name, args)
	}
	return nil
}
