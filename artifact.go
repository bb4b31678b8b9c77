package pdfexport

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultExportDir is where rendered PDFs are persisted unless overridden.
const DefaultExportDir = "/tmp/protex-intelligence-file-exports"

// PersistedFile describes a PDF written under the export root.
type PersistedFile struct {
	Name string // final file name, {sanitizedHint}_{uuid}.pdf
	Path string // full path under the export root
	Size string // human-readable size, e.g. "12 KB" or "1.04 MB"
}

// artifactWriter persists rendered PDF bytes under the export root.
type artifactWriter interface {
	Persist(buf []byte, filenameHint string) (*PersistedFile, error)
}

// fileWriter implements artifactWriter on the local filesystem.
// The export root is created lazily on first use and never torn down.
type fileWriter struct {
	exportDir string
	logger    *slog.Logger
}

// Persist writes the buffer under the export root as
// {sanitizedHint}_{uuid}.pdf. The fresh UUID per call keeps concurrent
// writers with the same hint from colliding.
func (w *fileWriter) Persist(buf []byte, filenameHint string) (*PersistedFile, error) {
	if err := os.MkdirAll(w.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportDir, err)
	}

	name := SanitizeFilename(filenameHint) + "_" + uuid.NewString() + ".pdf"
	path := filepath.Join(w.exportDir, name)

	// #nosec G306 -- exported PDFs are intended to be readable
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFile, err)
	}

	w.logger.Info("file written", "path", path)

	return &PersistedFile{
		Name: name,
		Path: path,
		Size: FormatFileSize(len(buf)),
	}, nil
}

// SanitizeFilename replaces every character outside [A-Za-z0-9_-] with
// an underscore. Idempotent and character-count preserving.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
}

// FormatFileSize renders a byte count the way the export envelope
// reports it: whole kibibytes (ceiling) below 1024 KB, mebibytes with
// two decimals at or above.
func FormatFileSize(n int) string {
	kb := math.Ceil(float64(n) / 1024)
	if kb < 1024 {
		return fmt.Sprintf("%.0f KB", kb)
	}
	return fmt.Sprintf("%.2f MB", kb/1024)
}
