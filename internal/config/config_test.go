package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "local", cfg.OCR.Provider)
	assert.Equal(t, "pdftotext", cfg.OCR.PdfToTextPath)
	assert.Equal(t, 30, cfg.OCR.PollMaxAttempts)
	assert.Equal(t, 1, cfg.OCR.PollDelaySecs)
	assert.Equal(t, 40, cfg.Extract.MaxBlockLines)
	assert.Equal(t, 4, cfg.Extract.Workers)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LABREPORT_SERVER_PORT", "9090")
	t.Setenv("LABREPORT_LOG_LEVEL", "debug")
	t.Setenv("LABREPORT_OCR_PROVIDER", "vision")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "vision", cfg.OCR.Provider)
}

func TestInitLogger(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)

	err = InitLogger(LogConfig{Level: "info", Format: "json"})
	assert.NoError(t, err)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shout", Format: "json"})
	assert.Error(t, err)
}
