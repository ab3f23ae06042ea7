// Package translate maps text between languages through the public Google
// translate endpoint and wraps it with the pipeline's fallback policy.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client calls the translate_a/single endpoint (the same one the reference
// googletrans library wraps).
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient builds a translation client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

// Translate returns text translated from src to dest, or an error.
func (c *Client) Translate(ctx context.Context, text, src, dest string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     src,
			"tl":     dest,
			"dt":     "t",
			"q":      text,
		}).
		Get(c.baseURL)

	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("translation service returned status %d", resp.StatusCode())
	}

	translated, err := parseResponse(resp.Body())
	if err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}

	return translated, nil
}

// parseResponse walks the endpoint's nested-array payload:
// [[["translated","original",...],...],...]. The first element of each
// segment is the translated chunk; chunks concatenate to the full text.
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var chunk string
		if err := json.Unmarshal(segment[0], &chunk); err != nil {
			continue
		}
		sb.WriteString(chunk)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated segments in payload")
	}
	return sb.String(), nil
}
