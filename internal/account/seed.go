package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"syndik/internal/domain"
	"syndik/internal/storage"
)

// SeedBootstrap creates the first top-administrator account when the accounts
// collection is empty, so a fresh deployment can be logged into at all. It is
// a no-op when any account exists and emits no audit entry: there is nobody
// to attribute it to yet.
func SeedBootstrap(ctx context.Context, store storage.Store, secret string) (*domain.Account, error) {
	accounts, err := storage.LoadCollection[domain.Account](ctx, store, storage.KeyAccounts)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash bootstrap secret: %w", err)
	}
	acct := domain.Account{
		ID:         uuid.NewString(),
		Name:       "Administrator",
		Email:      "admin@syndik.local",
		SecretHash: string(hash),
		Role:       domain.RoleTopAdministrator,
		Active:     true,
		CreatedAt:  time.Now(),
	}
	if err := storage.SaveCollection(ctx, store, storage.KeyAccounts, []domain.Account{acct}); err != nil {
		return nil, err
	}
	return &acct, nil
}
