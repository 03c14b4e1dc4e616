// Package main is the entry point for the liteagent CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/compresr/liteagent/internal/config"
	"github.com/compresr/liteagent/internal/monitoring"
)

// Version is set at build time via ldflags
var Version = "v0.1.0"

// loadEnvFiles loads .env from standard locations
func loadEnvFiles() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	// Try loading from ~/.config/liteagent/.env first
	configEnv := filepath.Join(homeDir, ".config", "liteagent", ".env")
	if _, err := os.Stat(configEnv); err == nil {
		_ = godotenv.Load(configEnv)
	}

	// Also load local .env (does not override already-set variables)
	_ = godotenv.Load()
}

func main() {
	loadEnvFiles()

	var err error
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "chat":
			err = runChat(os.Args[2:], os.Stdin, os.Stdout)
		case "models", "list":
			err = runModels(os.Args[2:], os.Stdout)
		case "capabilities", "caps":
			err = runCapabilities(os.Args[2:], os.Stdout)
		case "version", "-v", "--version":
			printVersion(os.Stdout)
		case "help", "-h", "--help":
			printHelp(os.Stdout)
		default:
			err = runChat(os.Args[1:], os.Stdin, os.Stdout)
		}
	} else {
		err = runChat(nil, os.Stdin, os.Stdout)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every command that talks to a server.
type commonFlags struct {
	configPath string
	model      string
	host       string
	debug      bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to config file")
	fs.StringVar(&c.model, "model", "", "model, e.g. llama3.1:8b or ollama/llama3.1:8b")
	fs.StringVar(&c.host, "host", "", "Ollama server URL (default $OLLAMA_HOST or http://localhost:11434)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
}

// load resolves the config file, applies flags and sets up logging.
// Validation is left to the caller, which knows which sections it needs.
func (c *commonFlags) load() (*config.Config, error) {
	data, source, err := resolveConfig(c.configPath)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if data != nil {
		if cfg, err = config.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}

	if c.model != "" {
		cfg.Provider.Model = c.model
	}
	if c.host != "" {
		cfg.Provider.Host = c.host
	}
	if c.debug {
		cfg.Monitoring.LogLevel = "debug"
	}

	if err := cfg.Monitoring.Validate(); err != nil {
		return nil, err
	}
	setupLogging(cfg)

	if source != "" {
		log.Debug().Str("config", source).Msg("configuration loaded")
	}
	return cfg, nil
}

// resolveConfig finds the config file.
// Checks: user flag -> ~/.config/liteagent -> working directory.
// Returns nil data when no file exists; defaults apply.
func resolveConfig(userConfig string) ([]byte, string, error) {
	if userConfig != "" {
		data, err := os.ReadFile(userConfig)
		if err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", userConfig)
		}
		return data, userConfig, nil
	}

	searchPaths := []string{}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".config", "liteagent", "config.yaml"))
	}
	searchPaths = append(searchPaths, "liteagent.yaml", filepath.Join("configs", "liteagent.yaml"))

	for _, path := range searchPaths {
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		}
	}
	return nil, "", nil
}

// setupLogging configures the global zerolog logger from the config.
func setupLogging(cfg *config.Config) {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	monitoring.Global(cfg.Monitoring.LoggerConfig(isTerminal))

	level, err := zerolog.ParseLevel(cfg.Monitoring.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "liteagent %s\n", Version)
}

// printHelp prints usage information
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "liteagent - chat with local models through Ollama")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  liteagent [command] [options] [prompt]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat          Send a prompt, or start an interactive session (default)")
	fmt.Fprintln(w, "  models        List models installed on the Ollama server")
	fmt.Fprintln(w, "  capabilities  Show model capabilities (context window, tool support, pricing)")
	fmt.Fprintln(w, "  version       Print version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common Options:")
	fmt.Fprintln(w, "  --config FILE     Config file (default ~/.config/liteagent/config.yaml or ./liteagent.yaml)")
	fmt.Fprintln(w, "  --model NAME      Model, e.g. llama3.1:8b")
	fmt.Fprintln(w, "  --host URL        Ollama server URL")
	fmt.Fprintln(w, "  --debug           Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chat Options:")
	fmt.Fprintln(w, "  --system TEXT     System prompt")
	fmt.Fprintln(w, "  --tools FILE      JSON array of tool definitions")
	fmt.Fprintln(w, "  --embed-tools     Describe tools in the system prompt instead of native tool calling")
	fmt.Fprintln(w, "  --temperature N   Sampling temperature")
	fmt.Fprintln(w, "  --top-p N         Nucleus sampling")
	fmt.Fprintln(w, "  --top-k N         Top-k sampling")
	fmt.Fprintln(w, "  --json            Print the normalized response as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  liteagent --model llama3.1:8b \"why is the sky blue?\"")
	fmt.Fprintln(w, "  echo \"summarize this\" | liteagent chat --model phi3")
	fmt.Fprintln(w, "  liteagent chat --model qwen2.5 --tools tools.json \"what's the weather in Paris?\"")
	fmt.Fprintln(w, "  liteagent capabilities --source models_dev llama-3.1-8b")
}
