package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"syndik/internal/condominium"
)

type condominiumRequest struct {
	LegalName   string `json:"legalName"`
	DisplayName string `json:"displayName"`
	CNPJ        string `json:"cnpj"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	CEP         string `json:"cep"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ManagerName string `json:"managerName"`
}

func (req condominiumRequest) toInput() condominium.Input {
	return condominium.Input{
		LegalName:   req.LegalName,
		DisplayName: req.DisplayName,
		CNPJ:        req.CNPJ,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		CEP:         req.CEP,
		Phone:       req.Phone,
		Email:       req.Email,
		ManagerName: req.ManagerName,
	}
}

func (h *Handler) handleListCondominiums(w http.ResponseWriter, r *http.Request) {
	condos, err := h.condos.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, condos)
}

func (h *Handler) handleGetCondominium(w http.ResponseWriter, r *http.Request) {
	condo, err := h.condos.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, condo)
}

func (h *Handler) handleCreateCondominium(w http.ResponseWriter, r *http.Request) {
	var req condominiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	condo, err := h.condos.Create(r.Context(), ActorFromContext(r.Context()), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, condo)
}

func (h *Handler) handleUpdateCondominium(w http.ResponseWriter, r *http.Request) {
	var req condominiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	condo, err := h.condos.Update(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, condo)
}

func (h *Handler) handleDeleteCondominium(w http.ResponseWriter, r *http.Request) {
	if err := h.condos.Delete(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
