// Package requestlog writes one structured log line per HTTP request.
package requestlog

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"noid/pkg/platform/privacy"
	"noid/pkg/requestcontext"
)

// Middleware logs method, route, status and duration. Request bodies carry
// identifiers and are never logged.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			ctx := r.Context()
			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"ip_prefix", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
