package users

import (
	"context"
	"fmt"
	"strings"

	"clinical-sharing/internal/domain/access"
)

// Directory es la vista mínima del proveedor de identidad que necesita el core.
// ResolveUserIDByEmail devuelve un error que envuelve access.ErrNotFound si el email no existe.
type Directory interface {
	ResolveUserIDByEmail(ctx context.Context, email string) (string, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

// Recorder lo implementan directorios que aprenden usuarios de las requests autenticadas.
type Recorder interface {
	Remember(userID, email string)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NotFoundEmail(email string) error {
	return fmt.Errorf("user with email %s: %w", email, access.ErrNotFound)
}
