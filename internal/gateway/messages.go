package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/specbridge/specbridge/internal/specconv"
)

// MessagesHandler serves the Anthropic-facing endpoint, mirroring
// ChatCompletionsHandler in the opposite direction.
type MessagesHandler struct {
	Converter *specconv.Converter
	Upstream  *Upstream
}

var _ http.Handler = (*MessagesHandler)(nil)

func (h *MessagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			slog.WarnContext(ctx, "request exceeds size limit", "limit_bytes", maxBytesErr.Limit)
			writeAnthropicError(ctx, w, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
			return
		}
		slog.ErrorContext(ctx, "failed to decode request", "error", err)
		writeAnthropicError(ctx, w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	if stream, ok := payload["stream"].(bool); ok && stream {
		writeAnthropicError(ctx, w, http.StatusBadRequest, "streaming is not supported")
		return
	}

	upstreamPayload, err := TranslateRequest(h.Converter, payload, specconv.FormatAnthropic, h.Upstream.Format())
	if err != nil {
		slog.ErrorContext(ctx, "request translation failed", "error", err)
		writeAnthropicError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	respBody, status, err := h.Upstream.Exchange(ctx, upstreamPayload, r.Header)
	if err != nil {
		slog.ErrorContext(ctx, "upstream exchange failed", "error", err)
		writeAnthropicError(ctx, w, http.StatusBadGateway, "upstream request failed")
		return
	}
	if status >= http.StatusBadRequest {
		slog.WarnContext(ctx, "upstream returned error", "status", status)
		writeAnthropicError(ctx, w, status, errorMessage(respBody))
		return
	}

	model, _ := payload["model"].(string)
	converted, err := h.Converter.ResponseToAnthropic(respBody, model)
	if err != nil {
		slog.ErrorContext(ctx, "response conversion failed", "error", err)
		writeAnthropicError(ctx, w, http.StatusBadGateway, "upstream returned an unusable response")
		return
	}

	writeJSON(ctx, w, converted, http.StatusOK)
}
