package main

import (
	"strings"
	"testing"
	"time"
)

// Notes:
// - These tests use t.Setenv and cannot run in parallel.

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("PDF_EXPORT_CONFIG", "server")
	t.Setenv("PDF_EXPORT_DIR", "/var/exports")
	t.Setenv("PDF_EXPORT_TIMEOUT", "90s")
	t.Setenv("PDF_EXPORT_BROWSER_BIN", "/usr/bin/chromium")
	t.Setenv("PDF_EXPORT_SANDBOX", "true")

	cfg := loadEnvConfig()

	if cfg.ConfigPath != "server" {
		t.Errorf("ConfigPath = %q, want server", cfg.ConfigPath)
	}
	if cfg.ExportDir != "/var/exports" {
		t.Errorf("ExportDir = %q, want /var/exports", cfg.ExportDir)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
	if cfg.BrowserBin != "/usr/bin/chromium" {
		t.Errorf("BrowserBin = %q", cfg.BrowserBin)
	}
	if cfg.Sandbox == nil || !*cfg.Sandbox {
		t.Error("Sandbox not parsed as true")
	}
}

func TestLoadEnvConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("PDF_EXPORT_TIMEOUT", "soon")
	t.Setenv("PDF_EXPORT_SANDBOX", "maybe")

	cfg := loadEnvConfig()

	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 for unparseable value", cfg.Timeout)
	}
	if cfg.Sandbox != nil {
		t.Errorf("Sandbox = %v, want nil for unparseable value", *cfg.Sandbox)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("PDF_EXPORT_TIMOUT", "30s") // typo on purpose
	t.Setenv("PDF_EXPORT_DIR", "/tmp/x") // known, no warning

	var buf strings.Builder
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "PDF_EXPORT_TIMOUT") {
		t.Errorf("expected warning for PDF_EXPORT_TIMOUT, got: %q", out)
	}
	if strings.Contains(out, "PDF_EXPORT_DIR") {
		t.Errorf("unexpected warning for known variable: %q", out)
	}
}
