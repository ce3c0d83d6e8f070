// Package metrics holds the Prometheus collectors of the site and the HTTP
// middleware that feeds them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frix_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frix_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"method", "route"})

	ResponseBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frix_http_response_bytes_total",
		Help: "Bytes written in response bodies by route pattern",
	}, []string{"route"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frix_http_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter",
	})

	RateLimitClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "frix_ratelimit_clients",
		Help: "Client addresses currently tracked by the rate limiter",
	})

	ContractViolations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "frix_page_contract_violations",
		Help: "Content contract violations found in the served landing page",
	})
)

// unmatchedRoute labels requests chi could not route, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Middleware records request count, latency and response size per route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		ResponseBytes.WithLabelValues(route).Add(float64(ww.BytesWritten()))
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
