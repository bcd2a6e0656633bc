package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"syndik/internal/account"
	"syndik/internal/domain"
)

// accountResponse is the wire shape of an account. The secret hash never
// leaves the service.
type accountResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	CondominiumID string    `json:"condominiumId,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	Permissions   []string  `json:"permissions,omitempty"`
}

func toAccountResponse(acct domain.Account) accountResponse {
	return accountResponse{
		ID:            acct.ID,
		Name:          acct.Name,
		Email:         acct.Email,
		Role:          string(acct.Role),
		CondominiumID: acct.CondominiumID,
		Active:        acct.Active,
		CreatedAt:     acct.CreatedAt,
		Permissions:   acct.Permissions,
	}
}

type createAccountRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Secret        string   `json:"secret"`
	Role          string   `json:"role"`
	CondominiumID string   `json:"condominiumId"`
	Permissions   []string `json:"permissions"`
}

type updateAccountRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Secret        *string  `json:"secret"`
	Active        *bool    `json:"active"`
	CondominiumID *string  `json:"condominiumId"`
	Permissions   []string `json:"permissions"`
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, toAccountResponse(acct))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	acct, err := h.accounts.Create(r.Context(), ActorFromContext(r.Context()), account.CreateInput{
		Name:          req.Name,
		Email:         req.Email,
		Secret:        req.Secret,
		Role:          req.Role,
		CondominiumID: req.CondominiumID,
		Permissions:   req.Permissions,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(acct))
}

func (h *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	acct, err := h.accounts.Update(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id"), account.UpdateInput{
		Name:          req.Name,
		Email:         req.Email,
		Secret:        req.Secret,
		Active:        req.Active,
		CondominiumID: req.CondominiumID,
		Permissions:   req.Permissions,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
