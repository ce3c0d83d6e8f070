package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamilvitek/frix/internal/config"
	"github.com/kamilvitek/frix/internal/handlers"
	"github.com/kamilvitek/frix/internal/ratelimit"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		ServerAddress:     "127.0.0.1",
		ServerPort:        4002,
		PageCacheMaxAge:   5 * time.Minute,
		StaticCacheMaxAge: 24 * time.Hour,
		MetricsEnabled:    true,
	}
}

// newSite builds the router the way the serve command wires it.
func newSite(t *testing.T, cfg *config.Config, limiter *ratelimit.Limiter) chi.Router {
	t.Helper()
	log := discardLog()

	r := NewRouter(RouterParams{Config: cfg, Log: log, Limiter: limiter})
	landing, err := handlers.NewLanding(cfg, log)
	require.NoError(t, err)
	handlers.RegisterRoutes(r, cfg, landing, handlers.NewHealth(landing), log)
	return r
}

func get(h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_LandingHasSecurityHeaders(t *testing.T) {
	r := newSite(t, testConfig(), nil)

	rec := get(r, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestRouter_Gzip(t *testing.T) {
	r := newSite(t, testConfig(), nil)

	rec := get(r, "/", http.Header{"Accept-Encoding": {"gzip"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestRouter_ETagIsWeakAcrossCodings(t *testing.T) {
	r := newSite(t, testConfig(), nil)

	gzipped := get(r, "/", http.Header{"Accept-Encoding": {"gzip"}})
	identity := get(r, "/", nil)

	require.Equal(t, "gzip", gzipped.Header().Get("Content-Encoding"))
	require.Empty(t, identity.Header().Get("Content-Encoding"))
	assert.True(t, strings.HasPrefix(gzipped.Header().Get("ETag"), `W/"`))
	assert.Equal(t, identity.Header().Get("ETag"), gzipped.Header().Get("ETag"))

	revalidated := get(r, "/", http.Header{
		"Accept-Encoding": {"gzip"},
		"If-None-Match":   {identity.Header().Get("ETag")},
	})
	assert.Equal(t, http.StatusNotModified, revalidated.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	r := newSite(t, testConfig(), ratelimit.New(1, 2, 100))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = get(r, "/", nil)
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1", last.Header().Get("Retry-After"))

	var resp map[string]map[string]any
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limited", resp["error"]["code"])
}

func TestRouter_ForwardedForIgnoredByDefault(t *testing.T) {
	limiter := ratelimit.New(1, 1, 100)
	r := newSite(t, testConfig(), limiter)

	codes := make([]int, 0, 20)
	for i := 0; i < 20; i++ {
		rec := get(r, "/", http.Header{"X-Forwarded-For": {fmt.Sprintf("198.51.100.%d", i)}})
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	for i, code := range codes[1:] {
		assert.Equal(t, http.StatusTooManyRequests, code, "request %d from the same socket", i+1)
	}
	assert.Equal(t, 1, limiter.Len())
}

func TestRouter_TrustedProxyHeadersKeyLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.TrustProxyHeaders = true
	r := newSite(t, cfg, ratelimit.New(1, 1, 100))

	first := get(r, "/", http.Header{"X-Forwarded-For": {"198.51.100.1"}})
	second := get(r, "/", http.Header{"X-Forwarded-For": {"198.51.100.2"}})
	again := get(r, "/", http.Header{"X-Forwarded-For": {"198.51.100.1"}})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, http.StatusTooManyRequests, again.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := get(h, "/", nil)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("inbound kept", func(t *testing.T) {
		rec := get(h, "/", http.Header{HeaderRequestID: {"abc-123"}})
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})

	t.Run("oversized inbound replaced", func(t *testing.T) {
		get(h, "/", http.Header{HeaderRequestID: {strings.Repeat("x", maxRequestIDLen+1)}})
		assert.Len(t, seen, 36)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	})))

	get(h, "/healthz", nil)
	assert.Zero(t, buf.Len(), "probes are not logged")

	get(h, "/pricing", nil)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "http", line["scope"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/pricing", line["uri"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, 5, line["bytes"])
	assert.NotEmpty(t, line["request_id"])
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := get(h, "/", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal_error", resp["error"]["code"])
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestRecoverer_ReraisesAbortHandler(t *testing.T) {
	h := Recoverer(discardLog())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		get(h, "/", nil)
	})
}
