package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"

	"github.com/kamilvitek/frix/internal/config"
	"github.com/kamilvitek/frix/internal/metrics"
	"github.com/kamilvitek/frix/internal/ratelimit"
	"github.com/kamilvitek/frix/internal/telemetry"
	"github.com/kamilvitek/frix/pkg/logger"
)

var Module = fx.Module("server",
	fx.Provide(
		NewLimiter,
		NewRouter,
	),
	fx.Invoke(StartServer),
)

// RouterParams are the dependencies for creating the router
type RouterParams struct {
	fx.In

	Config  *config.Config
	Log     *slog.Logger
	Limiter *ratelimit.Limiter
}

// NewRouter creates the chi router with the middleware stack. Routes are
// registered by the handlers module.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	if p.Config.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(
		RequestLogger(p.Log),
		Recoverer(p.Log),
		SecureHeaders,
	)
	if p.Config.Otel.Enabled() {
		r.Use(telemetry.Middleware(p.Config.Otel.ServiceName))
	}
	if p.Config.MetricsEnabled {
		r.Use(metrics.Middleware)
	}
	if p.Limiter != nil {
		r.Use(p.Limiter.Middleware(RateLimited))
	}
	r.Use(middleware.Compress(5))

	return r
}

// NewLimiter creates the per-client limiter and runs its sweeper for the
// lifetime of the app. It returns nil when limiting is disabled.
func NewLimiter(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) *ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled() {
		log.Info("rate limiting disabled", logger.Scope("ratelimit"))
		return nil
	}

	limiter := ratelimit.New(rl.RPS, rl.Burst, rl.MaxClients)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				limiter.Run(ctx, rl.SweepInterval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})

	return limiter
}

// StartServer starts the HTTP server with graceful shutdown
func StartServer(lc fx.Lifecycle, r chi.Router, cfg *config.Config, log *slog.Logger) {
	log = log.With(logger.Scope("server"))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Listen synchronously so a taken port fails start-up
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}

			log.Info("starting HTTP server",
				slog.String("address", ln.Addr().String()),
				slog.String("environment", cfg.Environment),
			)

			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", logger.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down HTTP server")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		},
	})
}
