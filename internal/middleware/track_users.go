package middleware

import (
	"net/http"

	"clinical-sharing/internal/domain/users"
)

// TrackUsers alimenta el directorio con los claims de cada request autenticada.
// Va después de AuthContext.
func TrackUsers(rec users.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := GetClaims(r.Context()); ok && c.UserID != "" {
				rec.Remember(c.UserID, c.Email)
			}
			next.ServeHTTP(w, r)
		})
	}
}
