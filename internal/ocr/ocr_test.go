package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/labreport-cli/internal/config"
)

func TestSplitLines(t *testing.T) {
	lines := SplitLines("  Haemoglobin 13.5  \n\n\tTLC 8200\n   \nESR 12")

	assert.Equal(t, []string{"Haemoglobin 13.5", "TLC 8200", "ESR 12"}, lines)
}

func TestSplitLines_Empty(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("\n\n  \n"))
}

func TestNewExtractor_DefaultLocal(t *testing.T) {
	e, err := NewExtractor(config.OCRConfig{})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, e)

	e, err = NewExtractor(config.OCRConfig{Provider: "local"})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, e)
}

func TestNewExtractor_VisionRequiresCredentials(t *testing.T) {
	_, err := NewExtractor(config.OCRConfig{Provider: "vision"})
	assert.Error(t, err)

	e, err := NewExtractor(config.OCRConfig{
		Provider:       "vision",
		VisionEndpoint: "https://example.invalid",
		VisionKey:      "key",
	})
	require.NoError(t, err)
	assert.IsType(t, &VisionClient{}, e)
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := NewExtractor(config.OCRConfig{Provider: "tesseract"})
	assert.Error(t, err)
}

func TestPdfToText_ExtractLines(t *testing.T) {
	// Stand-in binary that ignores its arguments and prints fixed text.
	script := filepath.Join(t.TempDir(), "fake-pdftotext")
	err := os.WriteFile(script, []byte("#!/bin/sh\nprintf 'Haemoglobin 13.5\\n\\nTLC 8200\\n'\n"), 0o755)
	require.NoError(t, err)

	p := NewPdfToText(script)
	lines, err := p.ExtractLines(context.Background(), "ignored.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"Haemoglobin 13.5", "TLC 8200"}, lines)
}

func TestPdfToText_BinaryMissing(t *testing.T) {
	p := NewPdfToText(filepath.Join(t.TempDir(), "missing-binary"))
	_, err := p.ExtractLines(context.Background(), "ignored.pdf")
	assert.Error(t, err)
}
