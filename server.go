package pdfexport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCP server identity.
const (
	serverName    = "pdf-export-mcp"
	serverVersion = "1.0.0"
)

// toolPDFExport is the single operation this server exposes.
const toolPDFExport = "pdf_export"

// exportInput is the wire shape of one pdf_export call.
type exportInput struct {
	HTML        string         `json:"html"`
	CSS         string         `json:"css,omitempty"`
	Filename    string         `json:"filename,omitempty"`
	Description string         `json:"description,omitempty"`
	Options     *exportOptions `json:"options,omitempty"`
}

// exportOptions mirrors RenderOptions on the wire. Pointer fields keep
// "absent" distinguishable from zero values so defaults apply correctly.
type exportOptions struct {
	Format              string  `json:"format,omitempty"`
	Orientation         string  `json:"orientation,omitempty"`
	PrintBackground     *bool   `json:"printBackground,omitempty"`
	Margin              *Margin `json:"margin,omitempty"`
	DisplayHeaderFooter bool    `json:"displayHeaderFooter,omitempty"`
	HeaderTemplate      string  `json:"headerTemplate,omitempty"`
	FooterTemplate      string  `json:"footerTemplate,omitempty"`
}

// failureEnvelope is the uniform failure shape returned to callers.
type failureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Server exposes the export pipeline as an MCP tool over stdio.
type Server struct {
	svc    *Service
	logger *slog.Logger
	mcp    *mcp.Server
}

// NewServer wraps the service in an MCP server with the pdf_export tool
// registered. A nil logger falls back to slog.Default().
func NewServer(svc *Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{svc: svc, logger: logger}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        toolPDFExport,
		Description: "Export HTML to PDF format and save to filesystem",
		InputSchema: exportInputSchema(),
	}, s.handlePDFExport)

	s.mcp = srv
	return s
}

// Run serves MCP over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("PDF Export MCP Server running on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// CallTool dispatches a tool call by name without going through a
// transport (library mode, used by tests and embedders). Unrecognized
// names fail with ErrUnknownTool.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if name != toolPDFExport {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshaling arguments: %w", err)
	}
	var input exportInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("unmarshaling arguments: %w", err)
	}

	res, _, err := s.handlePDFExport(ctx, nil, input)
	return res, err
}

// handlePDFExport is the error boundary for the pipeline: every failure
// becomes a well-formed envelope, never a protocol-level fault.
func (s *Server) handlePDFExport(ctx context.Context, _ *mcp.CallToolRequest, input exportInput) (*mcp.CallToolResult, any, error) {
	result, err := s.svc.Export(ctx, toRequest(input))
	if err != nil {
		s.logger.Error("error processing PDF export", "error", err)
		return failureResult(err), nil, nil
	}
	return successResult(result), nil, nil
}

// toRequest translates the wire input into a pipeline request.
func toRequest(input exportInput) Request {
	req := Request{
		HTML:        input.HTML,
		CSS:         input.CSS,
		Filename:    input.Filename,
		Description: input.Description,
	}

	if input.Options != nil {
		opts := &RenderOptions{
			Format:              input.Options.Format,
			Orientation:         input.Options.Orientation,
			PrintBackground:     input.Options.PrintBackground,
			DisplayHeaderFooter: input.Options.DisplayHeaderFooter,
			HeaderTemplate:      input.Options.HeaderTemplate,
			FooterTemplate:      input.Options.FooterTemplate,
		}
		if input.Options.Margin != nil {
			opts.Margin = *input.Options.Margin
		}
		req.Options = opts
	}

	return req
}

// successResult wraps the result in the protocol's text-content envelope.
func successResult(result *Result) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: marshalEnvelope(result)}},
	}
}

// failureResult wraps the error message in the uniform failure envelope
// with the protocol's error flag set.
func failureResult(err error) *mcp.CallToolResult {
	env := failureEnvelope{Success: false, Error: err.Error()}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: marshalEnvelope(env)}},
		IsError: true,
	}
}

// marshalEnvelope renders an envelope as indented JSON. The envelope
// types cannot fail to marshal; a failure here is a programmer error.
func marshalEnvelope(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic("pdfexport: marshaling envelope: " + err.Error())
	}
	return string(data)
}

// exportInputSchema describes the pdf_export tool's input, with the
// documented defaults surfaced to clients.
func exportInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"html"},
		Properties: map[string]*jsonschema.Schema{
			"html": {
				Type:        "string",
				Description: "HTML content to render as PDF",
			},
			"css": {
				Type:        "string",
				Description: "Optional CSS to apply to the HTML",
			},
			"filename": {
				Type:        "string",
				Description: "Filename for the exported file (without extension)",
				Default:     json.RawMessage(`"output"`),
			},
			"description": {
				Type:        "string",
				Description: "Optional description of the file contents",
			},
			"options": {
				Type:        "object",
				Description: "PDF generation options",
				Properties: map[string]*jsonschema.Schema{
					"format": {
						Type:        "string",
						Enum:        []any{FormatA4, FormatLetter, FormatLegal, FormatTabloid},
						Description: "Page format (default: A4)",
						Default:     json.RawMessage(`"A4"`),
					},
					"orientation": {
						Type:        "string",
						Enum:        []any{OrientationPortrait, OrientationLandscape},
						Description: "Page orientation (default: portrait)",
						Default:     json.RawMessage(`"portrait"`),
					},
					"printBackground": {
						Type:        "boolean",
						Description: "Print background graphics (default: true)",
						Default:     json.RawMessage(`true`),
					},
					"margin": {
						Type:        "object",
						Description: "Page margins",
						Properties: map[string]*jsonschema.Schema{
							"top":    {Type: "string", Default: json.RawMessage(`"20mm"`)},
							"right":  {Type: "string", Default: json.RawMessage(`"20mm"`)},
							"bottom": {Type: "string", Default: json.RawMessage(`"20mm"`)},
							"left":   {Type: "string", Default: json.RawMessage(`"20mm"`)},
						},
					},
					"displayHeaderFooter": {
						Type:        "boolean",
						Description: "Display header and footer (default: false)",
						Default:     json.RawMessage(`false`),
					},
					"headerTemplate": {
						Type:        "string",
						Description: "HTML template for the header",
					},
					"footerTemplate": {
						Type:        "string",
						Description: "HTML template for the footer",
					},
				},
			},
		},
	}
}
