package pdfexport

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML      = errors.New("HTML content cannot be empty")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Artifact persistence errors.
	ErrExportDir = errors.New("failed to create export directory")
	ErrWriteFile = errors.New("failed to write PDF file")

	// Render option validation errors.
	ErrInvalidPageFormat  = errors.New("invalid page format")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Dispatch boundary errors.
	ErrUnknownTool = errors.New("unknown tool")
)
