package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	defaultPollMaxAttempts = 30
	defaultPollDelay       = time.Second
)

// VisionClient extracts text using an asynchronous read API: submit the
// document, then poll the returned operation until it succeeds or the
// attempt budget runs out.
type VisionClient struct {
	endpoint    string
	apiKey      string
	maxAttempts int
	pollDelay   time.Duration
	client      *http.Client
}

// NewVisionClient creates a VisionClient. Non-positive maxAttempts or
// delaySecs fall back to the defaults.
func NewVisionClient(endpoint, apiKey string, maxAttempts, delaySecs int) *VisionClient {
	if maxAttempts <= 0 {
		maxAttempts = defaultPollMaxAttempts
	}
	delay := defaultPollDelay
	if delaySecs > 0 {
		delay = time.Duration(delaySecs) * time.Second
	}
	return &VisionClient{
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      apiKey,
		maxAttempts: maxAttempts,
		pollDelay:   delay,
		client:      &http.Client{},
	}
}

type visionReadResult struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

// ExtractLines submits the document and polls the read operation to
// completion, returning the recognized lines in order.
func (v *VisionClient) ExtractLines(ctx context.Context, path string) ([]string, error) {
	opURL, err := v.submit(ctx, path)
	if err != nil {
		return nil, err
	}
	return v.poll(ctx, opURL)
}

// submit posts the document bytes and returns the operation URL to poll.
func (v *VisionClient) submit(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: read document %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"/vision/v3.2/read/analyze", bytes.NewReader(data))
	if err != nil {
		return "", eris.Wrap(err, "ocr: create read request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "ocr: submit read request")
	}
	defer resp.Body.Close() //nolint:errcheck
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("ocr: read API returned %d", resp.StatusCode)
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", eris.New("ocr: read API response missing Operation-Location")
	}
	return opURL, nil
}

// poll fetches the operation status with a fixed inter-attempt delay until
// it succeeds, fails, or the bounded attempt count is exhausted.
func (v *VisionClient) poll(ctx context.Context, opURL string) ([]string, error) {
	for attempt := 0; attempt < v.maxAttempts; attempt++ {
		result, err := v.fetchResult(ctx, opURL)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(result.Status) {
		case "succeeded":
			return collectLines(result), nil
		case "failed", "cancelled":
			return nil, eris.Errorf("ocr: read operation status %q", result.Status)
		}

		zap.L().Debug("ocr: read operation still running",
			zap.Int("attempt", attempt+1),
			zap.String("status", result.Status),
		)

		timer := time.NewTimer(v.pollDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, eris.Wrap(ctx.Err(), "ocr: poll cancelled")
		case <-timer.C:
		}
	}

	return nil, eris.Errorf("ocr: read operation not complete after %d attempts", v.maxAttempts)
}

func (v *VisionClient) fetchResult(ctx context.Context, opURL string) (*visionReadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "ocr: create poll request")
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ocr: poll read operation")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ocr: read poll response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("ocr: poll returned %d: %s", resp.StatusCode, string(body))
	}

	var result visionReadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "ocr: unmarshal poll response")
	}
	return &result, nil
}

// collectLines flattens page and bounding-box structure into a plain
// ordered line list.
func collectLines(result *visionReadResult) []string {
	var lines []string
	for _, page := range result.AnalyzeResult.ReadResults {
		for _, line := range page.Lines {
			if text := strings.TrimSpace(line.Text); text != "" {
				lines = append(lines, text)
			}
		}
	}
	return lines
}
