package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kamilvitek/frix/internal/components"
	"github.com/kamilvitek/frix/internal/config"
	"github.com/kamilvitek/frix/internal/metrics"
	"github.com/kamilvitek/frix/internal/pagecheck"
	"github.com/kamilvitek/frix/pkg/logger"
	"github.com/kamilvitek/frix/pkg/tracing"
)

// Landing serves the landing page. The page has no inputs, so it is rendered
// and verified once and the same bytes are served to every request.
type Landing struct {
	body         []byte
	etag         string
	cacheControl string
	report       pagecheck.Report
}

// NewLanding renders the landing page and checks it against the content
// contract. A broken contract is logged, not fatal: /ready reports it.
func NewLanding(cfg *config.Config, log *slog.Logger) (*Landing, error) {
	log = log.With(logger.Scope("handlers.landing"))

	_, span := tracing.Start(context.Background(), "landing.render")
	defer span.End()

	body, err := components.RenderBytes()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("render landing page: %w", err)
	}

	report, err := pagecheck.Verify(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("verify landing page: %w", err)
	}

	h := &Landing{
		body:         body,
		etag:         computeETag(body),
		cacheControl: cacheControl(cfg.PageCacheMaxAge),
		report:       report,
	}
	span.SetAttributes(
		attribute.Int("frix.page.bytes", len(body)),
		attribute.String("frix.page.etag", h.etag),
	)

	metrics.ContractViolations.Set(float64(len(report.Violations)))
	if !report.OK() {
		log.Error("landing page violates content contract",
			slog.Int("violations", len(report.Violations)),
			logger.Error(report.Err()),
		)
	} else {
		log.Info("landing page rendered",
			slog.Int("bytes", len(body)),
			slog.String("etag", h.etag),
		)
	}

	return h, nil
}

// Report returns the content contract result of the served page.
func (h *Landing) Report() pagecheck.Report {
	return h.report
}

// ETag returns the entity tag sent with the page.
func (h *Landing) ETag() string {
	return h.etag
}

// ServeHTTP answers GET and HEAD for the landing page.
func (h *Landing) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("ETag", h.etag)
	header.Set("Cache-Control", h.cacheControl)

	if etagMatches(r.Header.Get("If-None-Match"), h.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Content-Length", strconv.Itoa(len(h.body)))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.body)
}

// computeETag returns a weak validator: the same tag is sent for the gzip
// and identity codings of the page.
func computeETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `W/"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches implements the weak comparison If-None-Match asks for.
func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	opaque := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == opaque {
			return true
		}
	}
	return false
}

func cacheControl(maxAge time.Duration) string {
	if maxAge <= 0 {
		return "no-cache"
	}
	return fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
}
