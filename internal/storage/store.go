// Package storage is the keyed JSON blob store behind every collection in the
// service. Stores are interface-driven to keep the domain logic testable and
// to allow swapping in-memory, file-based, or external persistence without
// rewiring business code.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys. Each key holds one whole-value JSON array; there are no
// partial updates, a writer always serializes the full collection back.
const (
	KeyAccounts            = "accounts"
	KeyCondominiums        = "condominiums"
	KeyPeople              = "people"
	KeyAuditEntries        = "auditEntries"
	KeyNotificationRecords = "notificationRecords"
)

var (
	// ErrNotFound keeps storage-specific misses consistent across backends.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by quota-limited backends when a write
	// would exceed the configured capacity. WithEviction reacts to it.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is whole-value read/write persistence: no transactions, no queries.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadCollection reads and decodes the collection under key. An absent key is
// an empty collection, not an error.
func LoadCollection[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	return items, nil
}

// SaveCollection serializes the full collection and writes it under key.
func SaveCollection[T any](ctx context.Context, s Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
