package httptransport

import (
	"encoding/json"
	"net/http"

	"syndik/internal/access"
	"syndik/internal/domain"
)

type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	acct, signed, err := h.accounts.Authenticate(r.Context(), req.Email, req.Secret)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: signed, Account: toAccountResponse(acct)})
}

type permissionsResponse struct {
	Resource    string               `json:"resource"`
	Permissions access.PermissionSet `json:"permissions"`
	ReadOnly    bool                 `json:"readOnly"`
}

// handlePermissions reports the caller's tuple for a resource family. The
// dashboard uses the readOnly flag to disable form controls.
func (h *Handler) handlePermissions(w http.ResponseWriter, r *http.Request) {
	resource := domain.Resource(r.URL.Query().Get("resource"))
	if resource == "" {
		writeError(w, http.StatusBadRequest, "resource query parameter is required")
		return
	}
	actor := ActorFromContext(r.Context())
	set := access.Evaluate(actor.Role, resource)
	writeJSON(w, http.StatusOK, permissionsResponse{
		Resource:    string(resource),
		Permissions: set,
		ReadOnly:    set.ReadOnly(),
	})
}
