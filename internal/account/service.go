// Package account implements the account-management workflows behind the
// users screen: the service validates, mutates the accounts collection, and
// feeds every state change to the audit recorder.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"syndik/internal/domain"
	"syndik/internal/storage"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	// ErrProtectedAccount guards top-administrator accounts from deletion.
	ErrProtectedAccount = errors.New("top-administrator accounts cannot be deleted")
)

// Recorder is the slice of the audit recorder this service needs.
type Recorder interface {
	Record(ctx context.Context, draft domain.EntryDraft) (domain.AuditEntry, error)
}

// TokenIssuer signs session tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(acct domain.Account) (string, error)
}

type Service struct {
	store    storage.Store
	recorder Recorder
	tokens   TokenIssuer
	logger   *slog.Logger
}

func NewService(store storage.Store, recorder Recorder, tokens TokenIssuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, recorder: recorder, tokens: tokens, logger: logger}
}

// CreateInput carries everything the create form submits.
type CreateInput struct {
	Name          string
	Email         string
	Secret        string
	Role          string
	CondominiumID string
	Permissions   []string
}

// UpdateInput carries optional changes. Role is absent on purpose: it is
// immutable after creation.
type UpdateInput struct {
	Name          *string
	Email         *string
	Secret        *string
	Active        *bool
	CondominiumID *string
	Permissions   []string
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (domain.Account, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") {
		return domain.Account{}, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, in.Email)
	}
	if len(in.Secret) < 6 {
		return domain.Account{}, fmt.Errorf("%w: secret must be at least 6 characters", ErrInvalidInput)
	}

	accounts, err := storage.LoadCollection[domain.Account](ctx, s.store, storage.KeyAccounts)
	if err != nil {
		return domain.Account{}, err
	}
	for _, existing := range accounts {
		if strings.EqualFold(existing.Email, email) {
			return domain.Account{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Secret), bcrypt.DefaultCost)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash secret: %w", err)
	}

	acct := domain.Account{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Email:         email,
		SecretHash:    string(hash),
		Role:          role,
		CondominiumID: in.CondominiumID,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	if role == domain.RoleTopAdministrator {
		acct.Permissions = in.Permissions
	}

	accounts = append(accounts, acct)
	if err := storage.SaveCollection(ctx, s.store, storage.KeyAccounts, accounts); err != nil {
		return domain.Account{}, err
	}

	s.recordChange(ctx, actor, domain.OperationCreate, domain.SeverityMedium,
		fmt.Sprintf("created account %s (%s)", acct.Name, acct.Role), acct.ID)
	return acct, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, in UpdateInput) (domain.Account, error) {
	accounts, err := storage.LoadCollection[domain.Account](ctx, s.store, storage.KeyAccounts)
	if err != nil {
		return domain.Account{}, err
	}

	idx := -1
	for i, acct := range accounts {
		if acct.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Account{}, ErrNotFound
	}
	acct := accounts[idx]

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		for i, existing := range accounts {
			if i != idx && strings.EqualFold(existing.Email, email) {
				return domain.Account{}, ErrEmailTaken
			}
		}
		acct.Email = email
	}
	if in.Name != nil {
		acct.Name = strings.TrimSpace(*in.Name)
	}
	if in.Secret != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Secret), bcrypt.DefaultCost)
		if err != nil {
			return domain.Account{}, fmt.Errorf("hash secret: %w", err)
		}
		acct.SecretHash = string(hash)
	}
	if in.Active != nil {
		acct.Active = *in.Active
	}
	if in.CondominiumID != nil {
		acct.CondominiumID = *in.CondominiumID
	}
	if in.Permissions != nil && acct.Role == domain.RoleTopAdministrator {
		acct.Permissions = in.Permissions
	}

	accounts[idx] = acct
	if err := storage.SaveCollection(ctx, s.store, storage.KeyAccounts, accounts); err != nil {
		return domain.Account{}, err
	}

	s.recordChange(ctx, actor, domain.OperationEdit, domain.SeverityMedium,
		fmt.Sprintf("updated account %s", acct.Name), acct.ID)
	return acct, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	accounts, err := storage.LoadCollection[domain.Account](ctx, s.store, storage.KeyAccounts)
	if err != nil {
		return err
	}

	idx := -1
	for i, acct := range accounts {
		if acct.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if accounts[idx].Role == domain.RoleTopAdministrator {
		return ErrProtectedAccount
	}
	deleted := accounts[idx]

	accounts = append(accounts[:idx], accounts[idx+1:]...)
	if err := storage.SaveCollection(ctx, s.store, storage.KeyAccounts, accounts); err != nil {
		return err
	}

	s.recordChange(ctx, actor, domain.OperationDelete, domain.SeverityHigh,
		fmt.Sprintf("deleted account %s (%s)", deleted.Name, deleted.Role), deleted.ID)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	accounts, err := storage.LoadCollection[domain.Account](ctx, s.store, storage.KeyAccounts)
	if err != nil {
		return domain.Account{}, err
	}
	for _, acct := range accounts {
		if acct.ID == id {
			return acct, nil
		}
	}
	return domain.Account{}, ErrNotFound
}

func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return storage.LoadCollection[domain.Account](ctx, s.store, storage.KeyAccounts)
}

// Authenticate verifies credentials and returns the account plus a signed
// session token. Login is deliberately not audited: the login operation kind
// is reserved and never emitted.
func (s *Service) Authenticate(ctx context.Context, email, secret string) (domain.Account, string, error) {
	accounts, err := storage.LoadCollection[domain.Account](ctx, s.store, storage.KeyAccounts)
	if err != nil {
		return domain.Account{}, "", err
	}
	for _, acct := range accounts {
		if !strings.EqualFold(acct.Email, email) {
			continue
		}
		if !acct.Active {
			return domain.Account{}, "", ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(acct.SecretHash), []byte(secret)) != nil {
			return domain.Account{}, "", ErrInvalidCredentials
		}
		signed, err := s.tokens.Issue(acct)
		if err != nil {
			return domain.Account{}, "", fmt.Errorf("issue token: %w", err)
		}
		return acct, signed, nil
	}
	return domain.Account{}, "", ErrInvalidCredentials
}

func (s *Service) recordChange(ctx context.Context, actor domain.Actor, op domain.Operation, sev domain.Severity, description, subjectID string) {
	detail, _ := json.Marshal(map[string]string{"accountId": subjectID})
	if _, err := s.recorder.Record(ctx, domain.EntryDraft{
		Operation:   op,
		Entity:      "account",
		Description: description,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorRole:   actor.Role,
		Detail:      detail,
		Severity:    sev,
	}); err != nil {
		s.logger.ErrorContext(ctx, "audit record failed", "entity", "account", "error", err)
	}
}
