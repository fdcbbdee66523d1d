package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/specbridge/specbridge/internal/observability/middleware"
	"github.com/specbridge/specbridge/internal/specconv"
)

// Options configures a Gateway.
type Options struct {
	Converter *specconv.Converter
	Upstream  *Upstream

	MaxRequestBytes int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration

	// Readiness backs the readiness probe; nil reports not ready.
	Readiness ReadinessChecker
}

// Gateway is the HTTP server hosting the two translation endpoints plus
// health probes.
type Gateway struct {
	server *http.Server
}

// New assembles the gateway's routes and middleware chain.
func New(opts Options) (*Gateway, error) {
	if opts.Converter == nil {
		return nil, fmt.Errorf("converter is required")
	}
	if opts.Upstream == nil {
		return nil, fmt.Errorf("upstream is required")
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = 10 << 20
	}

	mux := http.NewServeMux()
	mux.Handle("POST /v1/chat/completions", &ChatCompletionsHandler{
		Converter: opts.Converter,
		Upstream:  opts.Upstream,
	})
	mux.Handle("POST /v1/messages", &MessagesHandler{
		Converter: opts.Converter,
		Upstream:  opts.Upstream,
	})
	mux.HandleFunc("GET /healthz/live", livenessHandler())
	mux.HandleFunc("GET /healthz/ready", readinessHandler(opts.Readiness))

	handler := applyMiddlewares(mux,
		middleware.RequestIDGeneration,
		middleware.TraceContextExtraction,
		middleware.Logging(slog.Default()),
		middleware.RequestIDPropagation,
		Recovery,
		RequestSizeLimit(opts.MaxRequestBytes),
	)

	return &Gateway{
		server: &http.Server{
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
	}, nil
}

// Handler exposes the fully assembled handler chain, mainly for tests.
func (g *Gateway) Handler() http.Handler {
	return g.server.Handler
}

// Start begins serving on addr. Runtime errors after a successful listen are
// delivered on the returned channel.
func (g *Gateway) Start(ctx context.Context, addr string) (<-chan error, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	slog.InfoContext(ctx, "gateway listening", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := g.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh, nil
}

// Shutdown gracefully stops the server, honoring the context deadline.
func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}
