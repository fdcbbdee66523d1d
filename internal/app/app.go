package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/specbridge/specbridge/internal/config"
	"github.com/specbridge/specbridge/internal/gateway"
	"github.com/specbridge/specbridge/internal/specconv"
)

// App orchestrates the lifecycle of the translation gateway and related services.
type App struct {
	cfg     *config.Config
	gateway *gateway.Gateway
	health  *Health
}

// New wires configuration into the format converter, upstream client and
// gateway server.
func New(cfg *config.Config) (*App, error) {
	defaultFormat, ok := specconv.ParseFormat(cfg.Convert.DefaultFormat)
	if !ok {
		return nil, fmt.Errorf("unknown default format %q", cfg.Convert.DefaultFormat)
	}
	upstreamFormat, ok := specconv.ParseFormat(cfg.Upstream.Format)
	if !ok {
		return nil, fmt.Errorf("unknown upstream format %q", cfg.Upstream.Format)
	}

	conv := specconv.New(
		specconv.WithDefaultFormat(defaultFormat),
		specconv.WithAutoDetect(cfg.Convert.AutoDetect),
	)

	requestTimeout, err := config.DurationOrDefault(cfg.Upstream.RequestTimeout, config.DefaultRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse upstream request timeout: %w", err)
	}
	readTimeout, err := config.DurationOrDefault(cfg.Server.ReadTimeout, config.DefaultReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse server read timeout: %w", err)
	}
	writeTimeout, err := config.DurationOrDefault(cfg.Server.WriteTimeout, config.DefaultWriteTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse server write timeout: %w", err)
	}

	upstream := gateway.NewUpstream(cfg.Upstream.BaseURL, upstreamFormat, &http.Client{
		Timeout: requestTimeout,
	})

	health := NewHealth()
	gw, err := gateway.New(gateway.Options{
		Converter:       conv,
		Upstream:        upstream,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		Readiness:       health,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}

	return &App{
		cfg:     cfg,
		gateway: gw,
		health:  health,
	}, nil
}

// Start starts all services and blocks until shutdown is triggered.
// Uses errgroup for runtime error monitoring and shutdown function collection for coordinated cleanup.
func (a *App) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	var shutdownFuncs []func(context.Context) error

	// Startup phase: Start services
	slog.InfoContext(gCtx, "starting gateway server")
	gatewayErrCh, err := a.gateway.Start(gCtx, a.cfg.Server.ListenAddr)
	if err != nil {
		return fmt.Errorf("gateway startup failed: %w", err)
	}
	shutdownFuncs = append(shutdownFuncs, a.gateway.Shutdown)
	a.health.SetReady(true)

	// Monitor runtime errors - errgroup cancels context on first error
	g.Go(func() error {
		select {
		case err := <-gatewayErrCh:
			if err != nil {
				slog.ErrorContext(gCtx, "gateway runtime error", "error", err)
				return fmt.Errorf("gateway: %w", err)
			}
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	runtimeErr := g.Wait()

	a.health.SetReady(false)
	slog.InfoContext(gCtx, "shutting down services")

	shutdownTimeout, err := config.DurationOrDefault(a.cfg.Server.ShutdownTimeout, config.DefaultShutdownTimeout)
	if err != nil {
		shutdownTimeout = 0
	}

	// Shutdown phase: Stop all services
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if runtimeErr != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", runtimeErr))
	}

	for i := len(shutdownFuncs) - 1; i >= 0; i-- {
		if err := shutdownFuncs[i](shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "service shutdown failed", "error", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("application stopped")
	return nil
}
