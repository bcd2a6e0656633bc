package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"syndik/internal/person"
)

type personRequest struct {
	Name          string `json:"name"`
	CPF           string `json:"cpf"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Unit          string `json:"unit"`
	CondominiumID string `json:"condominiumId"`
}

func (req personRequest) toInput() person.Input {
	return person.Input{
		Name:          req.Name,
		CPF:           req.CPF,
		Email:         req.Email,
		Phone:         req.Phone,
		Unit:          req.Unit,
		CondominiumID: req.CondominiumID,
	}
}

func (h *Handler) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.List(r.Context(), ActorFromContext(r.Context()), r.URL.Query().Get("condominiumId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, people)
}

func (h *Handler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	p, err := h.people.Get(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	p, err := h.people.Create(r.Context(), ActorFromContext(r.Context()), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	p, err := h.people.Update(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := h.people.Delete(r.Context(), ActorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
