package pdfexport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/NicholasLeao/pdf-export-mcp/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, doc string, opts *RenderOptions) ([]byte, error)
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable
// testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, printOpts *proto.PagePrintToPDF) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// paperSizes holds paper dimensions in inches per page format.
var paperSizes = map[string][2]float64{
	FormatA4:      {8.27, 11.69},
	FormatLetter:  {8.5, 11},
	FormatLegal:   {8.5, 14},
	FormatTabloid: {11, 17},
}

// networkIdleWindow is the quiet period with no in-flight requests that
// must elapse before printing, so external resources (fonts, images)
// finish loading first.
const networkIdleWindow = 300 * time.Millisecond

// rodRenderer implements pdfRenderer using go-rod.
// Every render launches an isolated headless browser instance and
// releases it before returning, on success and failure paths alike.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	timeout    time.Duration
	browserBin string
	sandbox    bool
	logger     *slog.Logger
}

// newRodRenderer creates a rodRenderer from service configuration.
func newRodRenderer(cfg serviceConfig, logger *slog.Logger) *rodRenderer {
	return &rodRenderer{
		timeout:    cfg.timeout,
		browserBin: cfg.browserBin,
		sandbox:    cfg.sandbox,
		logger:     logger,
	}
}

// RenderFromFile opens a local HTML file in headless Chrome, waits for
// the page to reach network idle, and prints it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, printOpts *proto.PagePrintToPDF) ([]byte, error) {
	// Check context before launching a browser
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().Headless(true)
	if r.browserBin != "" {
		l = l.Bin(r.browserBin)
	}
	if !r.sandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	// Release the browser unconditionally. A failed close is logged and
	// swallowed so the original render error stays the reported one.
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			r.logger.Warn("browser close failed", "error", cerr)
		}
	}()

	// Resolve timeout from context deadline or renderer default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	page = page.Timeout(timeout)

	// Arm the network-idle wait before navigating so requests started
	// during load are tracked.
	waitIdle := page.WaitRequestIdle(networkIdleWindow, nil, nil, nil)

	if err := page.Navigate("file://" + filePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// rodConverter converts composed documents to PDF using headless Chrome
// via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(cfg serviceConfig, logger *slog.Logger) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(cfg, logger)}
}

// ToPDF translates the render options into Chrome print parameters,
// hands the document to the browser through a temp file, and returns
// the PDF bytes.
func (c *rodConverter) ToPDF(ctx context.Context, doc string, opts *RenderOptions) ([]byte, error) {
	printOpts, err := buildPrintOptions(opts)
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, printOpts)
}

// buildPrintOptions constructs proto.PagePrintToPDF from resolved
// render options. Header and footer templates are passed through only
// when DisplayHeaderFooter is set.
func buildPrintOptions(opts *RenderOptions) (*proto.PagePrintToPDF, error) {
	size, ok := paperSizes[opts.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPageFormat, opts.Format)
	}

	margins := [4]float64{}
	for i, side := range []struct{ name, value string }{
		{"top", opts.Margin.Top},
		{"right", opts.Margin.Right},
		{"bottom", opts.Margin.Bottom},
		{"left", opts.Margin.Left},
	} {
		inches, err := parseLength(side.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMargin, side.name, err)
		}
		margins[i] = inches
	}

	printBackground := true
	if opts.PrintBackground != nil {
		printBackground = *opts.PrintBackground
	}

	printOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(size[0]),
		PaperHeight:     floatPtr(size[1]),
		Landscape:       opts.Orientation == OrientationLandscape,
		PrintBackground: printBackground,
		MarginTop:       floatPtr(margins[0]),
		MarginRight:     floatPtr(margins[1]),
		MarginBottom:    floatPtr(margins[2]),
		MarginLeft:      floatPtr(margins[3]),
	}

	if opts.DisplayHeaderFooter {
		printOpts.DisplayHeaderFooter = true
		printOpts.HeaderTemplate = opts.HeaderTemplate
		printOpts.FooterTemplate = opts.FooterTemplate
	}

	return printOpts, nil
}

// lengthUnits maps CSS length units to inches.
var lengthUnits = map[string]float64{
	"in": 1,
	"cm": 1 / 2.54,
	"mm": 1 / 25.4,
	"px": 1.0 / 96,
}

// parseLength converts a CSS-style length string ("20mm", "0.5in",
// "2cm", "96px") to inches. A bare number is treated as pixels,
// matching Chrome's convention.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}

	unit := "px"
	number := s
	for suffix := range lengthUnits {
		if strings.HasSuffix(s, suffix) {
			unit = suffix
			number = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable length %q", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative length %q", s)
	}

	return value * lengthUnits[unit], nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
