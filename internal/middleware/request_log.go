package middleware

import (
	"net/http"
	"time"

	"clinical-sharing/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog registra una línea por request al terminar.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"latency_ms": time.Since(start).Milliseconds(),
			}
			if uid := UserID(r.Context()); uid != "" {
				fields["user_id"] = uid
			}

			switch {
			case status >= 500:
				log.Error("http.request", fields)
			case status >= 400:
				log.Warn("http.request", fields)
			default:
				log.Info("http.request", fields)
			}
		})
	}
}
