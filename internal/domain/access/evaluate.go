package access

import (
	"strings"
	"time"
)

// GrantState es la vista mínima de un grant que necesita el evaluador.
type GrantState struct {
	Level     Level
	ExpiresAt *time.Time // nil = sin vencimiento
	Revoked   bool
}

// ActiveAt: no revocado y (sin vencimiento o vence después de now).
func (g GrantState) ActiveAt(now time.Time) bool {
	return IsActive(g.Revoked, g.ExpiresAt, now)
}

func IsActive(revoked bool, expiresAt *time.Time, now time.Time) bool {
	if revoked {
		return false
	}
	return expiresAt == nil || expiresAt.After(now)
}

// Snapshot agrupa los hechos leídos en un único momento para una decisión.
type Snapshot struct {
	SubjectUserID string
	PatientID     string
	OwnerUserID   string

	// Grant vivo para (PatientID, SubjectUserID), nil si no existe.
	Grant *GrantState
}

type Decision struct {
	Granted bool
	Level   Level // nivel que el sujeto tiene efectivamente (LevelNone si ninguno)
	Reason  string
}

const (
	ReasonOwner          = "owner"
	ReasonGrant          = "grant"
	ReasonNoGrant        = "no_grant"
	ReasonExpired        = "grant_expired"
	ReasonRevoked        = "grant_revoked"
	ReasonInsufficient   = "insufficient_level"
	ReasonUnknownAction  = "unknown_action"
	ReasonMissingSubject = "missing_subject"
)

// Evaluate es una función pura de (snapshot, now, action).
// El vencimiento se calcula acá mismo; no depende de ningún barrido previo.
func Evaluate(s Snapshot, action Action, now time.Time) Decision {
	subject := strings.TrimSpace(s.SubjectUserID)
	if subject == "" {
		return Decision{Reason: ReasonMissingSubject}
	}

	required, ok := RequiredLevel(action)
	if !ok {
		return Decision{Reason: ReasonUnknownAction}
	}

	// 1) Owner: admin implícito, no revocable.
	if owner := strings.TrimSpace(s.OwnerUserID); owner != "" && owner == subject {
		return Decision{Granted: true, Level: LevelAdmin, Reason: ReasonOwner}
	}

	// 2) Grant único vivo para el par.
	if s.Grant == nil {
		return Decision{Reason: ReasonNoGrant}
	}
	if s.Grant.Revoked {
		return Decision{Reason: ReasonRevoked}
	}
	if !s.Grant.ActiveAt(now) {
		return Decision{Reason: ReasonExpired}
	}

	// 3) Comparación por orden total.
	if !s.Grant.Level.AtLeast(required) {
		return Decision{Level: s.Grant.Level, Reason: ReasonInsufficient}
	}
	return Decision{Granted: true, Level: s.Grant.Level, Reason: ReasonGrant}
}
