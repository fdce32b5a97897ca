package middleware

import (
	"net/http"
	"runtime/debug"

	"clinical-sharing/internal/platform/httpresp"
	"clinical-sharing/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chi/middleware.Recoverer para que el panic quede en el log
// estructurado con el request id.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("http.panic", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      rec,
					"stack":      string(debug.Stack()),
				})
				httpresp.WriteJSON(w, http.StatusInternalServerError, httpresp.ErrorResponse{Error: "internal"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
