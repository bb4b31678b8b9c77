package pdfexport

import (
	"fmt"
	"strings"
)

// documentComposer merges raw HTML and optional CSS into one complete
// document string for the render engine.
type documentComposer interface {
	Compose(htmlContent, cssContent string) string
}

// docComposition implements documentComposer with literal tag
// substitution. Tags carrying attributes (e.g. <html lang="en">) do not
// match the literal check and fall through to the wrapping branch.
type docComposition struct{}

// styledSkeleton wraps bare content in a full document with a style block.
const styledSkeleton = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>%s</style>
</head>
<body>
%s
</body>
</html>`

// bareSkeleton wraps bare content in a full document without styling.
const bareSkeleton = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
</head>
<body>
%s
</body>
</html>`

// Compose builds the document fed to the render engine.
//
// With CSS present, the style block lands after the first <head> tag,
// or after the first <html> tag inside a synthesized head, or the whole
// input is wrapped in a styled skeleton. Afterwards, content that still
// lacks both a doctype and an <html tag is wrapped in a bare skeleton.
func (docComposition) Compose(htmlContent, cssContent string) string {
	full := htmlContent

	if cssContent != "" {
		styleBlock := "<style>" + cssContent + "</style>"
		switch {
		case strings.Contains(htmlContent, "<head>"):
			full = strings.Replace(htmlContent, "<head>", "<head>"+styleBlock, 1)
		case strings.Contains(htmlContent, "<html>"):
			full = strings.Replace(htmlContent, "<html>", "<html><head>"+styleBlock+"</head>", 1)
		default:
			full = fmt.Sprintf(styledSkeleton, cssContent, htmlContent)
		}
	}

	if !strings.HasPrefix(full, "<!DOCTYPE") && !strings.Contains(full, "<html") {
		full = fmt.Sprintf(bareSkeleton, full)
	}

	return full
}
