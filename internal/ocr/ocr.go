// Package ocr holds the external OCR collaborators. The parsing core only
// ever sees the complete, final line list an Extractor returns; submit,
// poll, and retry live here, never inside the pipeline.
package ocr

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/labreport-cli/internal/config"
)

// Extractor converts a document into ordered lines of recognized text.
type Extractor interface {
	ExtractLines(ctx context.Context, path string) ([]string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "local", "":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case "vision":
		if cfg.VisionEndpoint == "" || cfg.VisionKey == "" {
			return nil, eris.New("ocr: vision provider requires vision_endpoint and vision_key")
		}
		return NewVisionClient(cfg.VisionEndpoint, cfg.VisionKey, cfg.PollMaxAttempts, cfg.PollDelaySecs), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}

// SplitLines splits raw extracted text into trimmed, non-empty lines,
// preserving order.
func SplitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
