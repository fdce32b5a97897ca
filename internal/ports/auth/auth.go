package auth

import (
	"context"
	"strings"
	"time"
)

// Claims es la identidad del caller tal como la devuelve el proveedor.
type Claims struct {
	UserID   string
	Email    string
	TenantID string

	// Cero si el proveedor no informa vencimiento.
	ExpiresAt time.Time
}

// Valid: hay sujeto y el token no venció en now.
func (c Claims) Valid(now time.Time) bool {
	if strings.TrimSpace(c.UserID) == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
