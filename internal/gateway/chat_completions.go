package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/specbridge/specbridge/internal/specconv"
)

// ChatCompletionsHandler serves the OpenAI-facing endpoint. The inbound body
// is translated to the upstream's format, forwarded, and the response
// converted back into a chat completion.
type ChatCompletionsHandler struct {
	Converter *specconv.Converter
	Upstream  *Upstream
}

// Compile-time check that ChatCompletionsHandler implements http.Handler
var _ http.Handler = (*ChatCompletionsHandler)(nil)

func (h *ChatCompletionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			slog.WarnContext(ctx, "request exceeds size limit", "limit_bytes", maxBytesErr.Limit)
			writeOpenAIError(ctx, w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
			return
		}
		slog.ErrorContext(ctx, "failed to decode request", "error", err)
		writeOpenAIError(ctx, w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	if stream, ok := payload["stream"].(bool); ok && stream {
		writeOpenAIError(ctx, w, http.StatusBadRequest, "streaming is not supported")
		return
	}

	// The endpoint fixes the caller's format; detection only flags bodies
	// whose structure contradicts it, which otherwise surface as confusing
	// upstream errors.
	if detected := h.Converter.DetectSpec(payload); detected != specconv.FormatOpenAI {
		slog.WarnContext(ctx, "request body shape does not match endpoint", "detected", detected)
	}

	upstreamPayload, err := TranslateRequest(h.Converter, payload, specconv.FormatOpenAI, h.Upstream.Format())
	if err != nil {
		slog.ErrorContext(ctx, "request translation failed", "error", err)
		writeOpenAIError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	respBody, status, err := h.Upstream.Exchange(ctx, upstreamPayload, r.Header)
	if err != nil {
		slog.ErrorContext(ctx, "upstream exchange failed", "error", err)
		writeOpenAIError(ctx, w, http.StatusBadGateway, "upstream request failed")
		return
	}
	if status >= http.StatusBadRequest {
		slog.WarnContext(ctx, "upstream returned error", "status", status)
		writeOpenAIError(ctx, w, status, errorMessage(respBody))
		return
	}

	model, _ := payload["model"].(string)
	converted, err := h.Converter.ResponseToOpenAI(respBody, model)
	if err != nil {
		slog.ErrorContext(ctx, "response conversion failed", "error", err)
		writeOpenAIError(ctx, w, http.StatusBadGateway, "upstream returned an unusable response")
		return
	}

	writeJSON(ctx, w, converted, http.StatusOK)
}
