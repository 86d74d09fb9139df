package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644))
	return path
}

func visionResult(status string, lines ...string) map[string]any {
	type line struct {
		Text string `json:"text"`
	}
	var ls []line
	for _, text := range lines {
		ls = append(ls, line{Text: text})
	}
	return map[string]any{
		"status": status,
		"analyzeResult": map[string]any{
			"readResults": []map[string]any{{"lines": ls}},
		},
	}
}

func TestVisionExtractLines_Succeeded(t *testing.T) {
	var polls atomic.Int32

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("POST /vision/v3.2/read/analyze", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		w.Header().Set("Operation-Location", srv.URL+"/op/123")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /op/123", func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		json.NewEncoder(w).Encode(visionResult("succeeded", "Haemoglobin 13.5", "TLC 8200"))
	})

	c := NewVisionClient(srv.URL, "key", 3, 1)
	lines, err := c.ExtractLines(context.Background(), writeTestDoc(t))

	require.NoError(t, err)
	assert.Equal(t, []string{"Haemoglobin 13.5", "TLC 8200"}, lines)
	assert.Equal(t, int32(1), polls.Load())
}

func TestVisionExtractLines_Failed(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("POST /vision/v3.2/read/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", srv.URL+"/op/500")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /op/500", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(visionResult("failed"))
	})

	c := NewVisionClient(srv.URL, "key", 3, 1)
	_, err := c.ExtractLines(context.Background(), writeTestDoc(t))

	assert.ErrorContains(t, err, "failed")
}

func TestVisionExtractLines_MissingOperationLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewVisionClient(srv.URL, "key", 3, 1)
	_, err := c.ExtractLines(context.Background(), writeTestDoc(t))

	assert.ErrorContains(t, err, "Operation-Location")
}

func TestVisionExtractLines_SubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewVisionClient(srv.URL, "bad-key", 3, 1)
	_, err := c.ExtractLines(context.Background(), writeTestDoc(t))

	assert.Error(t, err)
}

func TestVisionExtractLines_MissingFile(t *testing.T) {
	c := NewVisionClient("https://example.invalid", "key", 3, 1)
	_, err := c.ExtractLines(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	assert.Error(t, err)
}

func TestNewVisionClient_Defaults(t *testing.T) {
	c := NewVisionClient("https://example.invalid/", "key", 0, 0)

	assert.Equal(t, "https://example.invalid", c.endpoint)
	assert.Equal(t, defaultPollMaxAttempts, c.maxAttempts)
	assert.Equal(t, defaultPollDelay, c.pollDelay)
}
