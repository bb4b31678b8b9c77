package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	config     string
	exportDir  string
	timeout    time.Duration
	browserBin string
	sandbox    bool
	verbose    bool
	version    bool
}

// parseFlags parses args (excluding the program name) into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("pdf-export-mcp", flag.ContinueOnError)
	fs.StringVarP(&flags.config, "config", "c", "", "config file path or name")
	fs.StringVar(&flags.exportDir, "export-dir", "", "directory rendered PDFs are written to")
	fs.DurationVar(&flags.timeout, "timeout", 0, "render timeout (e.g. 45s)")
	fs.StringVar(&flags.browserBin, "browser-bin", "", "Chrome/Chromium binary (default: rod-managed download)")
	fs.BoolVar(&flags.sandbox, "sandbox", false, "enable the Chrome sandbox")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging to stderr")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return flags, nil
}
