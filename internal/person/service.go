// Package person implements the people-records workflows. Every operation is
// condominium-scoped: the service consults the access evaluator before
// exposing or mutating anything, and records audit entries on state changes.
package person

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"syndik/internal/access"
	"syndik/internal/domain"
	"syndik/internal/storage"
	"syndik/pkg/documents"
)

var (
	ErrNotFound = errors.New("person not found")
	// ErrPermissionDenied means the actor's tuple lacks the required flag.
	ErrPermissionDenied = errors.New("operation not permitted for role")
	// ErrScopeDenied means the target condominium is outside the actor's scope.
	ErrScopeDenied  = errors.New("condominium outside caller scope")
	ErrInvalidCPF   = errors.New("invalid CPF")
	ErrInvalidInput = errors.New("invalid input")
)

// Recorder is the slice of the audit recorder this service needs.
type Recorder interface {
	Record(ctx context.Context, draft domain.EntryDraft) (domain.AuditEntry, error)
}

type Service struct {
	store    storage.Store
	recorder Recorder
	logger   *slog.Logger
}

func NewService(store storage.Store, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, recorder: recorder, logger: logger}
}

// Input carries the person form fields.
type Input struct {
	Name          string
	CPF           string
	Email         string
	Phone         string
	Unit          string
	CondominiumID string
}

// List returns the people visible to the actor. An empty condominium filter
// is the global-listing variant: top administrators see everything, everyone
// else sees their own site.
func (s *Service) List(ctx context.Context, actor domain.Actor, condominiumID string) ([]domain.Person, error) {
	if !access.Evaluate(actor.Role, domain.ResourcePeople).View {
		return nil, ErrPermissionDenied
	}
	if !access.CanAccessCondominium(actor.Role, actor.CondominiumID, condominiumID) {
		return nil, ErrScopeDenied
	}

	people, err := storage.LoadCollection[domain.Person](ctx, s.store, storage.KeyPeople)
	if err != nil {
		return nil, err
	}

	scope := condominiumID
	if scope == "" && actor.Role != domain.RoleTopAdministrator {
		scope = actor.CondominiumID
	}
	if scope == "" {
		return people, nil
	}
	visible := make([]domain.Person, 0, len(people))
	for _, p := range people {
		if p.CondominiumID == scope {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (domain.Person, error) {
	if !access.Evaluate(actor.Role, domain.ResourcePeople).View {
		return domain.Person{}, ErrPermissionDenied
	}
	people, err := storage.LoadCollection[domain.Person](ctx, s.store, storage.KeyPeople)
	if err != nil {
		return domain.Person{}, err
	}
	for _, p := range people {
		if p.ID != id {
			continue
		}
		if !access.CanAccessCondominium(actor.Role, actor.CondominiumID, p.CondominiumID) {
			return domain.Person{}, ErrScopeDenied
		}
		return p, nil
	}
	return domain.Person{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, in Input) (domain.Person, error) {
	if !access.Evaluate(actor.Role, domain.ResourcePeople).Create {
		return domain.Person{}, ErrPermissionDenied
	}
	if !access.CanAccessCondominium(actor.Role, actor.CondominiumID, in.CondominiumID) {
		return domain.Person{}, ErrScopeDenied
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Person{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.CPF != "" && !documents.ValidCPF(in.CPF) {
		return domain.Person{}, ErrInvalidCPF
	}

	people, err := storage.LoadCollection[domain.Person](ctx, s.store, storage.KeyPeople)
	if err != nil {
		return domain.Person{}, err
	}

	p := domain.Person{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		CPF:           in.CPF,
		Email:         in.Email,
		Phone:         documents.FormatPhone(in.Phone),
		Unit:          in.Unit,
		CondominiumID: in.CondominiumID,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	people = append(people, p)
	if err := storage.SaveCollection(ctx, s.store, storage.KeyPeople, people); err != nil {
		return domain.Person{}, err
	}

	s.recordChange(ctx, actor, domain.OperationCreate, fmt.Sprintf("created person %s", p.Name), p)
	return p, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, in Input) (domain.Person, error) {
	if !access.Evaluate(actor.Role, domain.ResourcePeople).Edit {
		return domain.Person{}, ErrPermissionDenied
	}
	if in.CPF != "" && !documents.ValidCPF(in.CPF) {
		return domain.Person{}, ErrInvalidCPF
	}

	people, err := storage.LoadCollection[domain.Person](ctx, s.store, storage.KeyPeople)
	if err != nil {
		return domain.Person{}, err
	}
	for i, p := range people {
		if p.ID != id {
			continue
		}
		if !access.CanAccessCondominium(actor.Role, actor.CondominiumID, p.CondominiumID) {
			return domain.Person{}, ErrScopeDenied
		}
		if strings.TrimSpace(in.Name) != "" {
			p.Name = strings.TrimSpace(in.Name)
		}
		if in.CPF != "" {
			p.CPF = in.CPF
		}
		if in.Email != "" {
			p.Email = in.Email
		}
		if in.Phone != "" {
			p.Phone = documents.FormatPhone(in.Phone)
		}
		if in.Unit != "" {
			p.Unit = in.Unit
		}
		people[i] = p
		if err := storage.SaveCollection(ctx, s.store, storage.KeyPeople, people); err != nil {
			return domain.Person{}, err
		}
		s.recordChange(ctx, actor, domain.OperationEdit, fmt.Sprintf("updated person %s", p.Name), p)
		return p, nil
	}
	return domain.Person{}, ErrNotFound
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !access.Evaluate(actor.Role, domain.ResourcePeople).Delete {
		return ErrPermissionDenied
	}

	people, err := storage.LoadCollection[domain.Person](ctx, s.store, storage.KeyPeople)
	if err != nil {
		return err
	}
	for i, p := range people {
		if p.ID != id {
			continue
		}
		if !access.CanAccessCondominium(actor.Role, actor.CondominiumID, p.CondominiumID) {
			return ErrScopeDenied
		}
		people = append(people[:i], people[i+1:]...)
		if err := storage.SaveCollection(ctx, s.store, storage.KeyPeople, people); err != nil {
			return err
		}
		s.recordChange(ctx, actor, domain.OperationDelete, fmt.Sprintf("deleted person %s", p.Name), p)
		return nil
	}
	return ErrNotFound
}

func (s *Service) recordChange(ctx context.Context, actor domain.Actor, op domain.Operation, description string, p domain.Person) {
	detail, _ := json.Marshal(map[string]string{
		"personId":      p.ID,
		"condominiumId": p.CondominiumID,
	})
	if _, err := s.recorder.Record(ctx, domain.EntryDraft{
		Operation:   op,
		Entity:      "person",
		Description: description,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorRole:   actor.Role,
		Detail:      detail,
		Severity:    domain.SeverityLow,
	}); err != nil {
		s.logger.ErrorContext(ctx, "audit record failed", "entity", "person", "error", err)
	}
}
