package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/specbridge/specbridge/internal/specconv"
)

// forwardedHeaders are the inbound request headers passed to the backend.
// Everything else (hop-by-hop headers, client metadata) stays behind.
var forwardedHeaders = []string{"Authorization", "X-Api-Key", "Anthropic-Version"}

// Upstream forwards translated request bodies to the backend model API.
type Upstream struct {
	baseURL string
	format  specconv.Format
	client  *http.Client
}

// NewUpstream creates an Upstream for the backend at baseURL speaking the
// given format. A nil client falls back to http.DefaultClient.
func NewUpstream(baseURL string, format specconv.Format, client *http.Client) *Upstream {
	if client == nil {
		client = http.DefaultClient
	}
	return &Upstream{
		baseURL: strings.TrimRight(baseURL, "/"),
		format:  format,
		client:  client,
	}
}

// Format returns the wire format the backend speaks.
func (u *Upstream) Format() specconv.Format {
	return u.format
}

// path picks the backend endpoint matching its wire format.
func (u *Upstream) path() string {
	if u.format == specconv.FormatAnthropic {
		return "/v1/messages"
	}
	return "/v1/chat/completions"
}

// Exchange posts the payload to the backend and decodes the JSON response.
// The HTTP status is returned alongside so callers can relay upstream
// failures; a non-2xx status is not an error at this layer.
func (u *Upstream) Exchange(ctx context.Context, payload map[string]any, inbound http.Header) (map[string]any, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+u.path(), bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, name := range forwardedHeaders {
		if v := inbound.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode upstream response: %w", err)
	}
	return decoded, resp.StatusCode, nil
}

// errorMessage digs a human-readable message out of an upstream error body,
// whichever error envelope it uses.
func errorMessage(body map[string]any) string {
	if errObj, ok := body["error"].(map[string]any); ok {
		if msg, ok := errObj["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg
	}
	return "upstream request failed"
}
