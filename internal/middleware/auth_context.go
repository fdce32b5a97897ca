package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"clinical-sharing/internal/platform/logger"
	"clinical-sharing/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	headerDebugUserID    = "X-Debug-User-ID"
	headerDebugUserEmail = "X-Debug-User-Email"
)

type AuthOption func(*authConfig)

type authConfig struct {
	log logger.Logger
}

// WithAuthLogger registra los tokens rechazados (warn).
func WithAuthLogger(l logger.Logger) AuthOption {
	return func(c *authConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// AuthContext resuelve la identidad del caller y la deja en el contexto.
// Sin verifier (dev) se aceptan los headers X-Debug-User-ID / X-Debug-User-Email.
// Con verifier solo cuenta un Bearer válido. Nunca corta el request:
// los handlers responden 401 si falta identidad.
func AuthContext(verifier auth.Verifier, opts ...AuthOption) func(http.Handler) http.Handler {
	cfg := authConfig{log: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, verifier, cfg.log)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.Verifier, log logger.Logger) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(headerDebugUserID))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{
			UserID: uid,
			Email:  strings.ToLower(strings.TrimSpace(r.Header.Get(headerDebugUserEmail))),
		}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		log.Warn("auth.token_rejected", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"path":       r.URL.Path,
			"err":        err,
		})
		return auth.Claims{}, false
	}
	if !claims.Valid(time.Now()) {
		return auth.Claims{}, false
	}
	return claims, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// UserID devuelve el usuario autenticado o "".
func UserID(ctx context.Context) string {
	c, ok := GetClaims(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.UserID)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
