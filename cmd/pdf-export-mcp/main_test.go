package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NicholasLeao/pdf-export-mcp/internal/config"
)

func TestResolveConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := resolveConfig(&cliFlags{}, &envConfig{})
	if err != nil {
		t.Fatalf("resolveConfig() error: %v", err)
	}

	if cfg.ExportDir != config.DefaultExportDir {
		t.Errorf("ExportDir = %q, want default", cfg.ExportDir)
	}
	if cfg.RenderTimeout() != 30*time.Second {
		t.Errorf("RenderTimeout() = %v, want 30s", cfg.RenderTimeout())
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	content := "exportDir: /from/file\ntimeout: 1m\nbrowser:\n  bin: /file/chrome\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sandbox := true
	flags := &cliFlags{
		config:    path,
		exportDir: "/from/flag",
	}
	env := &envConfig{
		ExportDir:  "/from/env",
		Timeout:    90 * time.Second,
		BrowserBin: "/env/chrome",
		Sandbox:    &sandbox,
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		t.Fatalf("resolveConfig() error: %v", err)
	}

	// Flag beats env beats file.
	if cfg.ExportDir != "/from/flag" {
		t.Errorf("ExportDir = %q, want /from/flag", cfg.ExportDir)
	}
	// Env beats file when no flag is given.
	if cfg.RenderTimeout() != 90*time.Second {
		t.Errorf("RenderTimeout() = %v, want 90s", cfg.RenderTimeout())
	}
	if cfg.Browser.Bin != "/env/chrome" {
		t.Errorf("Browser.Bin = %q, want /env/chrome", cfg.Browser.Bin)
	}
	if !cfg.Browser.Sandbox {
		t.Error("Browser.Sandbox = false, want true from env")
	}
}

func TestResolveConfig_MissingConfigFile(t *testing.T) {
	t.Parallel()

	_, err := resolveConfig(&cliFlags{config: filepath.Join(t.TempDir(), "nope.yaml")}, &envConfig{})
	if err == nil {
		t.Error("resolveConfig() succeeded with missing config file")
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	if code := run([]string{"--version"}); code != exitSuccess {
		t.Errorf("run(--version) = %d, want %d", code, exitSuccess)
	}
}

func TestRun_BadFlags(t *testing.T) {
	t.Parallel()

	if code := run([]string{"--bogus"}); code != exitError {
		t.Errorf("run(--bogus) = %d, want %d", code, exitError)
	}
}
