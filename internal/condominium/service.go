// Package condominium implements the site-management workflows: CRUD over the
// condominiums collection with audit recording on every state change.
package condominium

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"syndik/internal/domain"
	"syndik/internal/storage"
	"syndik/pkg/documents"
)

var (
	ErrNotFound     = errors.New("condominium not found")
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

// Input carries the create/update form fields. Document and contact fields
// are normalized to their display formats on save.
type Input struct {
	LegalName   string
	DisplayName string
	CNPJ        string
	Address     string
	City        string
	State       string
	CEP         string
	Phone       string
	Email       string
	ManagerName string
}

func (in Input) normalized() (Input, error) {
	in.LegalName = strings.TrimSpace(in.LegalName)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.DisplayName == "" {
		in.DisplayName = in.LegalName
	}
	if in.LegalName == "" {
		return in, fmt.Errorf("%w: legal name is required", ErrInvalidInput)
	}
	in.CNPJ = documents.FormatCNPJ(in.CNPJ)
	in.CEP = documents.FormatCEP(in.CEP)
	in.Phone = documents.FormatPhone(in.Phone)
	return in, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, in Input) (domain.Condominium, error) {
	in, err := in.normalized()
	if err != nil {
		return domain.Condominium{}, err
	}

	condos, err := storage.LoadCollection[domain.Condominium](ctx, s.store, storage.KeyCondominiums)
	if err != nil {
		return domain.Condominium{}, err
	}

	condo := domain.Condominium{
		ID:          uuid.NewString(),
		LegalName:   in.LegalName,
		DisplayName: in.DisplayName,
		CNPJ:        in.CNPJ,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		CEP:         in.CEP,
		Phone:       in.Phone,
		Email:       in.Email,
		ManagerName: in.ManagerName,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	condos = append(condos, condo)
	if err := storage.SaveCollection(ctx, s.store, storage.KeyCondominiums, condos); err != nil {
		return domain.Condominium{}, err
	}

	s.recordChange(ctx, actor, domain.OperationCreate, domain.SeverityMedium,
		fmt.Sprintf("created condominium %s", condo.DisplayName), condo.ID)
	return condo, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, in Input) (domain.Condominium, error) {
	in, err := in.normalized()
	if err != nil {
		return domain.Condominium{}, err
	}

	condos, err := storage.LoadCollection[domain.Condominium](ctx, s.store, storage.KeyCondominiums)
	if err != nil {
		return domain.Condominium{}, err
	}
	for i, condo := range condos {
		if condo.ID != id {
			continue
		}
		condo.LegalName = in.LegalName
		condo.DisplayName = in.DisplayName
		condo.CNPJ = in.CNPJ
		condo.Address = in.Address
		condo.City = in.City
		condo.State = in.State
		condo.CEP = in.CEP
		condo.Phone = in.Phone
		condo.Email = in.Email
		condo.ManagerName = in.ManagerName
		condos[i] = condo
		if err := storage.SaveCollection(ctx, s.store, storage.KeyCondominiums, condos); err != nil {
			return domain.Condominium{}, err
		}
		s.recordChange(ctx, actor, domain.OperationEdit, domain.SeverityMedium,
			fmt.Sprintf("updated condominium %s", condo.DisplayName), condo.ID)
		return condo, nil
	}
	return domain.Condominium{}, ErrNotFound
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	condos, err := storage.LoadCollection[domain.Condominium](ctx, s.store, storage.KeyCondominiums)
	if err != nil {
		return err
	}
	for i, condo := range condos {
		if condo.ID != id {
			continue
		}
		condos = append(condos[:i], condos[i+1:]...)
		if err := storage.SaveCollection(ctx, s.store, storage.KeyCondominiums, condos); err != nil {
			return err
		}
		// Accounts referencing this condominium keep their dangling id;
		// readers filter those out.
		s.recordChange(ctx, actor, domain.OperationDelete, domain.SeverityHigh,
			fmt.Sprintf("deleted condominium %s", condo.DisplayName), condo.ID)
		return nil
	}
	return ErrNotFound
}

func (s *Service) Get(ctx context.Context, id string) (domain.Condominium, error) {
	condos, err := storage.LoadCollection[domain.Condominium](ctx, s.store, storage.KeyCondominiums)
	if err != nil {
		return domain.Condominium{}, err
	}
	for _, condo := range condos {
		if condo.ID == id {
			return condo, nil
		}
	}
	return domain.Condominium{}, ErrNotFound
}

func (s *Service) List(ctx context.Context) ([]domain.Condominium, error) {
	return storage.LoadCollection[domain.Condominium](ctx, s.store, storage.KeyCondominiums)
}

func (s *Service) recordChange(ctx context.Context, actor domain.Actor, op domain.Operation, sev domain.Severity, description, subjectID string) {
	detail, _ := json.Marshal(map[string]string{"condominiumId": subjectID})
	if _, err := s.recorder.Record(ctx, domain.EntryDraft{
		Operation:   op,
		Entity:      "condominium",
		Description: description,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorRole:   actor.Role,
		Detail:      detail,
		Severity:    sev,
	}); err != nil {
		s.logger.ErrorContext(ctx, "audit record failed", "entity", "condominium", "error", err)
	}
}
