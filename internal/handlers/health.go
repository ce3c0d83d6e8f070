package handlers

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/kamilvitek/frix/internal/version"
	"github.com/kamilvitek/frix/pkg/apperror"
)

// Health handles health check requests
type Health struct {
	landing  *Landing
	startAt  time.Time
	draining atomic.Bool
}

// NewHealth creates a new health handler
func NewHealth(landing *Landing) *Health {
	return &Health{
		landing: landing,
		startAt: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MarkDraining flips readiness off ahead of shutdown.
func (h *Health) MarkDraining() {
	h.draining.Store(true)
}

// Health returns the overall service health
func (h *Health) Health(w http.ResponseWriter, r *http.Request) {
	page := Check{Status: "healthy"}
	if err := h.landing.Report().Err(); err != nil {
		page = Check{Status: "unhealthy", Message: err.Error()}
	}

	response := HealthResponse{
		Status:    page.Status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startAt).Round(time.Second).String(),
		Version:   version.Version,
		Checks: map[string]Check{
			"page": page,
		},
	}

	status := http.StatusOK
	if page.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, r, status, response)
}

// Healthz returns a simple liveness answer
func (h *Health) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Ready reports whether the instance should receive traffic
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	if h.draining.Load() {
		apperror.Write(w, r, nil, apperror.ErrNotReady.WithMessage("Server is shutting down"))
		return
	}
	if err := h.landing.Report().Err(); err != nil {
		apperror.Write(w, r, nil, apperror.ErrNotReady.
			WithMessage("Landing page failed its content check").
			WithDetails(map[string]any{"violations": h.landing.Report().Violations}))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

// Version returns build information
func (h *Health) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, version.Info())
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
