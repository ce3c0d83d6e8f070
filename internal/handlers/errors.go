package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kamilvitek/frix/internal/components"
	"github.com/kamilvitek/frix/pkg/apperror"
)

// NotFound answers unknown routes with the HTML not-found page for browsers
// and the JSON error envelope for everything else.
func NotFound(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsHTML(r) {
			apperror.Write(w, r, log, apperror.NewNotFound(r.URL.Path))
			return
		}

		var buf bytes.Buffer
		if err := components.NotFoundPage().Render(&buf); err != nil {
			apperror.Write(w, r, log, apperror.NewInternal("Failed to render page", err))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if r.Method != http.MethodHead {
			_, _ = w.Write(buf.Bytes())
		}
	}
}

// MethodNotAllowed answers a known route called with the wrong method.
func MethodNotAllowed(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apperror.Write(w, r, log, apperror.ErrMethodNotAllowed.WithMessage(r.Method+" is not supported for "+r.URL.Path))
	}
}

func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}
