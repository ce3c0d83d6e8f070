package apperror

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Write renders err as the JSON error envelope. 5xx errors are logged with the
// wrapped internal error; HEAD requests get the status line only.
func Write(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	code, body := ToHTTPError(err)

	if code >= 500 && log != nil {
		log.Error("request error",
			slog.Int("status", code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)

	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
