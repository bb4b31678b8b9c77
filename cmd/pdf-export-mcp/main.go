package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	pdfexport "github.com/NicholasLeao/pdf-export-mcp"
	"github.com/NicholasLeao/pdf-export-mcp/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	if flags.version {
		fmt.Println("pdf-export-mcp " + Version)
		return exitSuccess
	}

	// Stdout carries the MCP transport; everything else goes to stderr.
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Configure GOMAXPROCS for containers.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, fmtArgs ...interface{}) {
		logger.Debug(fmt.Sprintf(format, fmtArgs...))
	}))

	warnUnknownEnvVars(os.Stderr)

	cfg, err := resolveConfig(flags, loadEnvConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	svc := pdfexport.New(serviceOptions(cfg, logger)...)
	server := pdfexport.NewServer(svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server stopped", "error", err)
		return exitError
	}

	return exitSuccess
}

// resolveConfig merges configuration sources.
// Precedence: flags > environment > config file > defaults.
func resolveConfig(flags *cliFlags, env *envConfig) (*config.Config, error) {
	configPath := flags.config
	if configPath == "" {
		configPath = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Environment overrides
	if env.ExportDir != "" {
		cfg.ExportDir = env.ExportDir
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.Sandbox != nil {
		cfg.Browser.Sandbox = *env.Sandbox
	}

	// Flag overrides
	if flags.exportDir != "" {
		cfg.ExportDir = flags.exportDir
	}
	if flags.timeout > 0 {
		cfg.Timeout = flags.timeout.String()
	}
	if flags.browserBin != "" {
		cfg.Browser.Bin = flags.browserBin
	}
	if flags.sandbox {
		cfg.Browser.Sandbox = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// serviceOptions maps resolved configuration to service options.
func serviceOptions(cfg *config.Config, logger *slog.Logger) []pdfexport.Option {
	opts := []pdfexport.Option{
		pdfexport.WithExportDir(cfg.ExportDir),
		pdfexport.WithTimeout(cfg.RenderTimeout()),
		pdfexport.WithSandbox(cfg.Browser.Sandbox),
		pdfexport.WithLogger(logger),
	}
	if cfg.Browser.Bin != "" {
		opts = append(opts, pdfexport.WithBrowserBin(cfg.Browser.Bin))
	}
	return opts
}
