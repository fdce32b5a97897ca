package accessgrants

import (
	"context"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/users"
)

// Repository guarda grants indexados por el par (patientID, granteeUserID).
// Las escrituras son condicionales: nunca pueden quedar dos grants vivos para el mismo par.
type Repository interface {
	// ReplaceActive guarda g como el grant vivo de su par y marca como superseded
	// al anterior (si existía) en una sola operación atómica.
	// Devuelve el grant reemplazado, o nil.
	ReplaceActive(ctx context.Context, g Grant) (*Grant, error)

	// UpdateLevel cambia el nivel solo si el grant sigue vivo; si no, ErrNotFound.
	UpdateLevel(ctx context.Context, id string, level access.Level, at time.Time) (Grant, error)

	// MarkRevoked es idempotente: un grant ya revocado se devuelve sin cambios.
	MarkRevoked(ctx context.Context, id string, at time.Time) (Grant, error)

	GetByID(ctx context.Context, id string) (Grant, error)
	GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (Grant, error)
	ListByPatient(ctx context.Context, patientID string) ([]Grant, error)
	ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error)
}

// OwnerLookup evita importar el paquete patients (rompe ciclos).
type OwnerLookup interface {
	OwnerOf(ctx context.Context, patientID string) (string, error)
}

// UserDirectory resuelve identidades del proveedor externo.
type UserDirectory = users.Directory
