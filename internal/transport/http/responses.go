package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"syndik/internal/account"
	"syndik/internal/condominium"
	"syndik/internal/person"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError centralizes domain error translation to HTTP responses so
// handlers stay consistent. Storage failures fall through to 500: the caller
// must never be told the operation succeeded when persistence failed.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound),
		errors.Is(err, condominium.ErrNotFound),
		errors.Is(err, person.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, account.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, account.ErrProtectedAccount):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, person.ErrPermissionDenied),
		errors.Is(err, person.ErrScopeDenied):
		h.metrics.IncPermissionDenials()
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, condominium.ErrInvalidInput),
		errors.Is(err, person.ErrInvalidInput),
		errors.Is(err, person.ErrInvalidCPF):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
