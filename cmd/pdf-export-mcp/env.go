package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // PDF_EXPORT_CONFIG: config file path or name
	ExportDir  string        // PDF_EXPORT_DIR: export root for rendered PDFs
	Timeout    time.Duration // PDF_EXPORT_TIMEOUT: render timeout
	BrowserBin string        // PDF_EXPORT_BROWSER_BIN: Chrome binary path
	Sandbox    *bool         // PDF_EXPORT_SANDBOX: enable the Chrome sandbox
}

// knownEnvVars lists valid PDF_EXPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDF_EXPORT_CONFIG":      true,
	"PDF_EXPORT_DIR":         true,
	"PDF_EXPORT_TIMEOUT":     true,
	"PDF_EXPORT_BROWSER_BIN": true,
	"PDF_EXPORT_SANDBOX":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized PDF_EXPORT_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PDF_EXPORT_CONFIG"),
		ExportDir:  os.Getenv("PDF_EXPORT_DIR"),
		BrowserBin: os.Getenv("PDF_EXPORT_BROWSER_BIN"),
	}

	if timeout := os.Getenv("PDF_EXPORT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if sandbox := os.Getenv("PDF_EXPORT_SANDBOX"); sandbox != "" {
		if b, err := strconv.ParseBool(sandbox); err == nil {
			cfg.Sandbox = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for every PDF_EXPORT_* variable
// that is not recognized, catching typos like PDF_EXPORT_TIMOUT.
func warnUnknownEnvVars(w io.Writer) {
	for _, entry := range os.Environ() {
		name, _, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, "PDF_EXPORT_") {
			continue
		}
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s\n", name)
		}
	}
}
