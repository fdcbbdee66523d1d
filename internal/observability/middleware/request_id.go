package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDContextKey is a context key for storing request IDs.
type RequestIDContextKey struct{}

// requestID reads the ID from the X-Request-ID header or the context,
// generating one if neither exists.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id, ok := r.Context().Value(RequestIDContextKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// RequestIDGeneration resolves the request ID and stores it in the request
// context for downstream middlewares.
func RequestIDGeneration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), RequestIDContextKey{}, requestID(r))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDPropagation echoes the request ID back to the client via the
// X-Request-ID response header and attaches it to the request log. The
// header is set early so it survives recovery scenarios.
func RequestIDPropagation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := r.Context().Value(RequestIDContextKey{}).(string); ok && id != "" {
			w.Header().Set("X-Request-ID", id)
			SetLogAttrs(r.Context(), slog.String("request_id", id))
		}

		next.ServeHTTP(w, r)
	})
}
