package pdfexport

import (
	"errors"
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{
			name:  "millimeters",
			input: "20mm",
			want:  20 / 25.4,
		},
		{
			name:  "centimeters",
			input: "2.54cm",
			want:  1,
		},
		{
			name:  "inches",
			input: "0.5in",
			want:  0.5,
		},
		{
			name:  "pixels",
			input: "96px",
			want:  1,
		},
		{
			name:  "bare number treated as pixels",
			input: "48",
			want:  0.5,
		},
		{
			name:  "whitespace tolerated",
			input: " 20mm ",
			want:  20 / 25.4,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "abcmm",
			wantErr: true,
		},
		{
			name:    "negative",
			input:   "-5mm",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLength(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLength(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLength(%q) error: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseLength(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildPrintOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults map to A4 portrait with backgrounds", func(t *testing.T) {
		opts := DefaultRenderOptions()
		printOpts, err := buildPrintOptions(opts)
		if err != nil {
			t.Fatalf("buildPrintOptions() error: %v", err)
		}

		if *printOpts.PaperWidth != 8.27 || *printOpts.PaperHeight != 11.69 {
			t.Errorf("paper = %vx%v, want 8.27x11.69", *printOpts.PaperWidth, *printOpts.PaperHeight)
		}
		if printOpts.Landscape {
			t.Error("Landscape = true, want false")
		}
		if !printOpts.PrintBackground {
			t.Error("PrintBackground = false, want true")
		}
		wantMargin := 20 / 25.4
		for side, got := range map[string]float64{
			"top":    *printOpts.MarginTop,
			"right":  *printOpts.MarginRight,
			"bottom": *printOpts.MarginBottom,
			"left":   *printOpts.MarginLeft,
		} {
			if math.Abs(got-wantMargin) > 1e-9 {
				t.Errorf("margin %s = %v, want %v", side, got, wantMargin)
			}
		}
		if printOpts.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = true, want false")
		}
	})

	t.Run("landscape orientation sets the flag", func(t *testing.T) {
		opts := (&RenderOptions{Orientation: OrientationLandscape}).withDefaults()
		printOpts, err := buildPrintOptions(opts)
		if err != nil {
			t.Fatalf("buildPrintOptions() error: %v", err)
		}
		if !printOpts.Landscape {
			t.Error("Landscape = false, want true")
		}
	})

	t.Run("tabloid paper dimensions", func(t *testing.T) {
		opts := (&RenderOptions{Format: FormatTabloid}).withDefaults()
		printOpts, err := buildPrintOptions(opts)
		if err != nil {
			t.Fatalf("buildPrintOptions() error: %v", err)
		}
		if *printOpts.PaperWidth != 11 || *printOpts.PaperHeight != 17 {
			t.Errorf("paper = %vx%v, want 11x17", *printOpts.PaperWidth, *printOpts.PaperHeight)
		}
	})

	t.Run("print background can be disabled", func(t *testing.T) {
		off := false
		opts := (&RenderOptions{PrintBackground: &off}).withDefaults()
		printOpts, err := buildPrintOptions(opts)
		if err != nil {
			t.Fatalf("buildPrintOptions() error: %v", err)
		}
		if printOpts.PrintBackground {
			t.Error("PrintBackground = true, want false")
		}
	})

	t.Run("header and footer only when display enabled", func(t *testing.T) {
		opts := (&RenderOptions{
			HeaderTemplate: "<span>header</span>",
			FooterTemplate: "<span>footer</span>",
		}).withDefaults()
		printOpts, err := buildPrintOptions(opts)
		if err != nil {
			t.Fatalf("buildPrintOptions() error: %v", err)
		}
		if printOpts.DisplayHeaderFooter || printOpts.HeaderTemplate != "" || printOpts.FooterTemplate != "" {
			t.Error("templates applied without DisplayHeaderFooter")
		}

		opts.DisplayHeaderFooter = true
		printOpts, err = buildPrintOptions(opts)
		if err != nil {
			t.Fatalf("buildPrintOptions() error: %v", err)
		}
		if !printOpts.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = false, want true")
		}
		if printOpts.HeaderTemplate != "<span>header</span>" || printOpts.FooterTemplate != "<span>footer</span>" {
			t.Errorf("templates = %q / %q, want passthrough", printOpts.HeaderTemplate, printOpts.FooterTemplate)
		}
	})

	t.Run("unknown format fails", func(t *testing.T) {
		opts := DefaultRenderOptions()
		opts.Format = "A5"
		_, err := buildPrintOptions(opts)
		if !errors.Is(err, ErrInvalidPageFormat) {
			t.Errorf("error = %v, want ErrInvalidPageFormat", err)
		}
	})

	t.Run("bad margin fails", func(t *testing.T) {
		opts := DefaultRenderOptions()
		opts.Margin.Left = "wide"
		_, err := buildPrintOptions(opts)
		if !errors.Is(err, ErrInvalidMargin) {
			t.Errorf("error = %v, want ErrInvalidMargin", err)
		}
	})
}
