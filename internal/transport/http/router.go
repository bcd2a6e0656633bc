// Package httptransport is the thin HTTP layer over the services. Handlers
// delegate to domain services without embedding business logic so transport
// concerns remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"syndik/internal/account"
	"syndik/internal/condominium"
	"syndik/internal/person"
	"syndik/internal/platform/clientmeta"
	"syndik/internal/platform/metrics"
	"syndik/internal/platform/token"
	"syndik/internal/storage"

	"syndik/internal/domain"
)

// TokenValidator verifies session tokens for the auth middleware.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

type Handler struct {
	accounts *account.Service
	condos   *condominium.Service
	people   *person.Service
	store    storage.Store
	tokens   TokenValidator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewHandler(
	accounts *account.Service,
	condos *condominium.Service,
	people *person.Service,
	store storage.Store,
	tokens TokenValidator,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		accounts: accounts,
		condos:   condos,
		people:   people,
		store:    store,
		tokens:   tokens,
		metrics:  m,
		logger:   logger,
	}
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(clientmeta.Middleware)

	r.Get("/healthz", h.handleHealth)
	r.Post("/auth/login", h.handleLogin)

	r.Route("/api", func(api chi.Router) {
		api.Use(h.requireAuth)

		api.Get("/permissions", h.handlePermissions)

		api.Route("/accounts", func(rt chi.Router) {
			rt.With(h.requirePermission(domain.ResourceAccounts, canView)).Get("/", h.handleListAccounts)
			rt.With(h.requirePermission(domain.ResourceAccounts, canView)).Get("/{id}", h.handleGetAccount)
			rt.With(h.requirePermission(domain.ResourceAccounts, canCreate)).Post("/", h.handleCreateAccount)
			rt.With(h.requirePermission(domain.ResourceAccounts, canEdit)).Put("/{id}", h.handleUpdateAccount)
			rt.With(h.requirePermission(domain.ResourceAccounts, canDelete)).Delete("/{id}", h.handleDeleteAccount)
		})

		api.Route("/condominiums", func(rt chi.Router) {
			rt.With(h.requirePermission(domain.ResourceCondominiums, canView)).Get("/", h.handleListCondominiums)
			rt.With(h.requirePermission(domain.ResourceCondominiums, canView)).Get("/{id}", h.handleGetCondominium)
			rt.With(h.requirePermission(domain.ResourceCondominiums, canCreate)).Post("/", h.handleCreateCondominium)
			rt.With(h.requirePermission(domain.ResourceCondominiums, canEdit)).Put("/{id}", h.handleUpdateCondominium)
			rt.With(h.requirePermission(domain.ResourceCondominiums, canDelete)).Delete("/{id}", h.handleDeleteCondominium)
		})

		// People routes skip the tuple middleware: the person service does
		// its own permission and condominium-scope checks.
		api.Route("/people", func(rt chi.Router) {
			rt.Get("/", h.handleListPeople)
			rt.Get("/{id}", h.handleGetPerson)
			rt.Post("/", h.handleCreatePerson)
			rt.Put("/{id}", h.handleUpdatePerson)
			rt.Delete("/{id}", h.handleDeletePerson)
		})

		api.With(h.requirePermission(domain.ResourceAuditLogs, canView)).
			Get("/audit-entries", h.handleListAuditEntries)
		api.With(h.requirePermission(domain.ResourceAuditLogs, canView)).
			Get("/notifications", h.handleListNotifications)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
