// Package pdfexport renders HTML documents to PDF files using headless
// Chrome and exposes the operation as an MCP (Model Context Protocol)
// tool over stdio.
//
// # Quick Start
//
// Create a Service and export a document:
//
//	svc := pdfexport.New(pdfexport.WithExportDir("/tmp/exports"))
//
//	result, err := svc.Export(ctx, pdfexport.Request{
//	    HTML:     "<h1>Invoice</h1>",
//	    CSS:      "h1 { color: navy; }",
//	    Filename: "invoice",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Filename, result.Filesize)
//
// To serve the tool over MCP stdio, wrap the service in a Server:
//
//	server := pdfexport.NewServer(svc, logger)
//	if err := server.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Export Pipeline
//
// Each export runs these stages:
//
//  1. Validation (HTML must be non-empty after trimming)
//  2. Document composition (CSS injection, document skeleton wrapping)
//  3. PDF rendering via headless Chrome (go-rod)
//  4. Artifact persistence under the export root with a UUID-suffixed name
//
// Every render launches an isolated browser instance and releases it
// before returning, on success and failure paths alike. Nothing is
// shared between requests except the export directory.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := pdfexport.New(
//	    pdfexport.WithTimeout(time.Minute),
//	    pdfexport.WithExportDir("/var/exports"),
//	    pdfexport.WithBrowserBin("/usr/bin/chromium"),
//	)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). The Chrome sandbox is disabled by default
// because the server commonly runs inside containers; re-enable it
// with WithSandbox(true) when the host allows it.
package pdfexport
