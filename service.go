package pdfexport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// MIME type reported for every exported artifact.
const pdfMIMEType = "application/pdf"

// Result is the success envelope for one export.
type Result struct {
	Path     string `json:"path"`
	Filetype string `json:"filetype"`
	Filename string `json:"filename"`
	Filesize string `json:"filesize"`
}

// Service orchestrates the compose, render, persist pipeline.
type Service struct {
	cfg      serviceConfig
	logger   *slog.Logger
	composer documentComposer
	pdf      pdfConverter
	writer   artifactWriter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithExportDir).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:   DefaultTimeout,
			exportDir: DefaultExportDir,
		},
		logger:   slog.Default(),
		composer: docComposition{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create collaborators if not injected (e.g., by tests)
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg, s.logger)
	}
	if s.writer == nil {
		s.writer = &fileWriter{exportDir: s.cfg.exportDir, logger: s.logger}
	}

	return s
}

// Export runs the full pipeline and returns the persisted artifact's
// metadata. The context bounds the render; any failure from validation,
// rendering, or persistence is returned for the caller to envelope.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, ErrEmptyHTML
	}

	opts := req.Options.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hint := req.Filename
	if hint == "" {
		hint = DefaultFilename
	}

	doc := s.composer.Compose(req.HTML, req.CSS)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.logger.Info("generating PDF",
		"format", opts.Format,
		"orientation", opts.Orientation,
	)

	pdfBytes, err := s.pdf.ToPDF(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}

	file, err := s.writer.Persist(pdfBytes, hint)
	if err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}

	s.logger.Info("PDF exported", "filename", file.Name, "filesize", file.Size)

	return &Result{
		Path:     file.Name,
		Filetype: pdfMIMEType,
		Filename: file.Name,
		Filesize: file.Size,
	}, nil
}
