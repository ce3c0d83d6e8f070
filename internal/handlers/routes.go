package handlers

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/kamilvitek/frix/internal/assets"
	"github.com/kamilvitek/frix/internal/config"
	"github.com/kamilvitek/frix/internal/metrics"
)

// RegisterRoutes registers the site routes
func RegisterRoutes(r chi.Router, cfg *config.Config, landing *Landing, h *Health, log *slog.Logger) {
	r.NotFound(NotFound(log))
	r.MethodNotAllowed(MethodNotAllowed(log))

	r.Get("/", landing.ServeHTTP)
	r.Head("/", landing.ServeHTTP)

	static := Static(assets.FS(), cfg.StaticCacheMaxAge)
	r.Get("/static/*", static.ServeHTTP)
	r.Head("/static/*", static.ServeHTTP)

	r.Get("/health", h.Health)
	r.Get("/healthz", h.Healthz)
	r.Get("/ready", h.Ready)
	r.Get("/version", h.Version)

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}
}
