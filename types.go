package pdfexport

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Page format constants accepted by the pdf_export tool.
const (
	FormatA4      = "A4"
	FormatLetter  = "Letter"
	FormatLegal   = "Legal"
	FormatTabloid = "Tabloid"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Defaults applied when a request omits a field.
const (
	DefaultFilename   = "output"
	DefaultMarginSide = "20mm"
)

// Request holds one export invocation. HTML is required; everything
// else falls back to documented defaults.
type Request struct {
	HTML        string
	CSS         string
	Filename    string // file name hint, defaults to "output"
	Description string // informational only, not used by the pipeline
	Options     *RenderOptions
}

// Margin holds the four page margins as CSS-style length strings
// (e.g. "20mm", "0.5in", "96px").
type Margin struct {
	Top    string `json:"top,omitempty"`
	Right  string `json:"right,omitempty"`
	Bottom string `json:"bottom,omitempty"`
	Left   string `json:"left,omitempty"`
}

// RenderOptions controls page geometry and chrome of the rendered PDF.
// Zero-value fields take their documented defaults; PrintBackground is
// a pointer so that "unset" and "false" stay distinguishable (the
// default is true).
type RenderOptions struct {
	Format              string // "A4", "Letter", "Legal", "Tabloid" (default: "A4")
	Orientation         string // "portrait", "landscape" (default: "portrait")
	PrintBackground     *bool  // default: true
	Margin              Margin // default: 20mm all sides
	DisplayHeaderFooter bool
	HeaderTemplate      string // only applied when DisplayHeaderFooter is true
	FooterTemplate      string // only applied when DisplayHeaderFooter is true
}

// DefaultRenderOptions returns render options with all defaults applied.
func DefaultRenderOptions() *RenderOptions {
	return (*RenderOptions)(nil).withDefaults()
}

// withDefaults returns a copy of o with every unset field resolved to
// its default. Safe to call on a nil receiver.
func (o *RenderOptions) withDefaults() *RenderOptions {
	out := RenderOptions{}
	if o != nil {
		out = *o
	}

	if out.Format == "" {
		out.Format = FormatA4
	} else if canonical, ok := canonicalFormat(out.Format); ok {
		out.Format = canonical
	}

	if out.Orientation == "" {
		out.Orientation = OrientationPortrait
	} else {
		out.Orientation = strings.ToLower(out.Orientation)
	}

	if out.PrintBackground == nil {
		t := true
		out.PrintBackground = &t
	}

	if out.Margin.Top == "" {
		out.Margin.Top = DefaultMarginSide
	}
	if out.Margin.Right == "" {
		out.Margin.Right = DefaultMarginSide
	}
	if out.Margin.Bottom == "" {
		out.Margin.Bottom = DefaultMarginSide
	}
	if out.Margin.Left == "" {
		out.Margin.Left = DefaultMarginSide
	}

	return &out
}

// Validate checks that options resolved by withDefaults are renderable.
func (o *RenderOptions) Validate() error {
	if _, ok := paperSizes[o.Format]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageFormat, o.Format)
	}

	switch o.Orientation {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, o.Orientation)
	}

	for _, side := range []struct{ name, value string }{
		{"top", o.Margin.Top},
		{"right", o.Margin.Right},
		{"bottom", o.Margin.Bottom},
		{"left", o.Margin.Left},
	} {
		if _, err := parseLength(side.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidMargin, side.name, err)
		}
	}

	return nil
}

// canonicalFormat maps a case-insensitive format name to its canonical
// spelling ("a4" -> "A4"). Unknown names are reported by Validate.
func canonicalFormat(format string) (string, bool) {
	for name := range paperSizes {
		if strings.EqualFold(name, format) {
			return name, true
		}
	}
	return format, false
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout    time.Duration
	exportDir  string
	browserBin string
	sandbox    bool
}

// DefaultTimeout bounds one render (browser launch, page load, print)
// when no timeout is specified.
const DefaultTimeout = 30 * time.Second

// WithTimeout sets the render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdfexport: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithExportDir sets the directory rendered PDFs are persisted under.
func WithExportDir(dir string) Option {
	return func(s *Service) {
		s.cfg.exportDir = dir
	}
}

// WithBrowserBin sets an explicit Chrome/Chromium binary instead of the
// rod-managed download.
func WithBrowserBin(path string) Option {
	return func(s *Service) {
		s.cfg.browserBin = path
	}
}

// WithSandbox toggles the Chrome sandbox. It is off by default because
// the server commonly runs in containers where the sandbox cannot start.
func WithSandbox(enabled bool) Option {
	return func(s *Service) {
		s.cfg.sandbox = enabled
	}
}

// WithLogger sets the structured logger. Logs go to stderr by default;
// stdout is reserved for the MCP transport.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
