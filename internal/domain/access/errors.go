package access

import "errors"

// Taxonomía de errores compartida por grants, adapters y timeline.
// Los paquetes envuelven con %w; los callers usan errors.Is.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConflictRace      = errors.New("conflicting concurrent write")
	ErrSourceUnavailable = errors.New("source unavailable")
)

// Kind clasifica err dentro de la taxonomía; se usa como etiqueta de métricas.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPermissionDenied):
		return "denied"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, ErrConflictRace):
		return "conflict"
	case errors.Is(err, ErrSourceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
