package accessgrants

import (
	"time"

	"clinical-sharing/internal/domain/access"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRevoked    Status = "revoked"
	StatusSuperseded Status = "superseded" // reemplazado por un grant nuevo del mismo par
)

// DefaultExpiringSoonWindow: un grant "vence pronto" si vence dentro de 7 días.
const DefaultExpiringSoonWindow = 7 * 24 * time.Hour

type Grant struct {
	ID string

	PatientID string

	GrantorUserID string // quien comparte
	GranteeUserID string // quien recibe acceso

	Level  access.Level
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt *time.Time // nil = sin vencimiento
	RevokedAt *time.Time
}

// Live indica que el grant no fue revocado ni reemplazado (puede estar vencido).
func (g Grant) Live() bool { return g.Status == StatusActive }

// ActiveAt aplica la definición completa de "activo" con un now fijo.
func (g Grant) ActiveAt(now time.Time) bool {
	return access.IsActive(!g.Live(), g.ExpiresAt, now)
}

func (g Grant) State() access.GrantState {
	return access.GrantState{
		Level:     g.Level,
		ExpiresAt: g.ExpiresAt,
		Revoked:   !g.Live(),
	}
}

// ListedGrant es un grant activo con anotaciones calculadas para la UI.
type ListedGrant struct {
	Grant
	ExpiringSoon bool
}

func annotate(g Grant, now time.Time, window time.Duration) ListedGrant {
	soon := false
	if g.ExpiresAt != nil {
		soon = g.ExpiresAt.Sub(now) <= window
	}
	return ListedGrant{Grant: g, ExpiringSoon: soon}
}
