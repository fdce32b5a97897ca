package httpresp

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinical-sharing/internal/domain/access"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse es el cuerpo de todas las respuestas de error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatusFor traduce la taxonomía de access a HTTP.
// Denegado (403) y no encontrado (404) nunca se mezclan.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, access.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, access.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, access.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrConflictRace):
		return http.StatusConflict
	case errors.Is(err, access.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func code(status int) string {
	switch status {
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "source_unavailable"
	case http.StatusUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// WriteError escribe el error con su status. Los 500 no exponen el detalle.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: code(status)}
	if status != http.StatusInternalServerError {
		resp.Message = err.Error()
	}
	WriteJSON(w, status, resp)
}

func Unauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: code(http.StatusUnauthorized)})
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: code(http.StatusBadRequest), Message: msg})
}
