package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	N int `json:"n"`
}

func records(n int) []rec {
	out := make([]rec, n)
	for i := range out {
		out[i] = rec{N: i}
	}
	return out
}

func TestEvictionTrimsOldestAndRetries(t *testing.T) {
	ctx := context.Background()

	// Quota sized so 100 records do not fit but 100-trim do.
	full, err := json.Marshal(records(100))
	require.NoError(t, err)

	inner := NewMemory(WithQuota(len(full) - 1))
	s := WithEviction(inner, 10)

	require.NoError(t, SaveCollection(ctx, s, "recs", records(100)))

	kept, err := LoadCollection[rec](ctx, s, "recs")
	require.NoError(t, err)
	require.Len(t, kept, 90)
	assert.Equal(t, 10, kept[0].N, "the oldest records are the ones dropped")
	assert.Equal(t, 99, kept[len(kept)-1].N)
}

func TestEvictionRetriesOnlyOnce(t *testing.T) {
	ctx := context.Background()

	// Even the trimmed value does not fit, so the quota error surfaces.
	inner := NewMemory(WithQuota(8))
	s := WithEviction(inner, 1)

	err := SaveCollection(ctx, s, "recs", records(50))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestEvictionLeavesNonArrayValuesAlone(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory(WithQuota(4))
	s := WithEviction(inner, 10)

	err := s.Set(ctx, "blob", []byte(`"a long string value"`))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, err = inner.Get(ctx, "blob")
	assert.ErrorIs(t, err, ErrNotFound, "nothing is written when recovery is impossible")
}

func TestEvictionPassesThroughOtherErrors(t *testing.T) {
	ctx := context.Background()
	boom := fmt.Errorf("backend offline")
	s := WithEviction(errStore{err: boom}, 10)

	err := s.Set(ctx, "k", []byte(`[]`))
	assert.ErrorIs(t, err, boom)
}

func TestEvictionNoOpUnderQuota(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory(WithQuota(1 << 20))
	s := WithEviction(inner, 10)

	require.NoError(t, SaveCollection(ctx, s, "recs", records(5)))
	kept, err := LoadCollection[rec](ctx, s, "recs")
	require.NoError(t, err)
	assert.Len(t, kept, 5)
}

func TestEvictionTrimLargerThanCollection(t *testing.T) {
	ctx := context.Background()

	inner := NewMemory(WithQuota(2))
	s := WithEviction(inner, 500)

	// Trimming everything leaves an empty array, which fits.
	require.NoError(t, SaveCollection(ctx, s, "recs", records(3)))
	kept, err := LoadCollection[rec](ctx, s, "recs")
	require.NoError(t, err)
	assert.Empty(t, kept)
}

type errStore struct {
	err error
}

func (e errStore) Get(context.Context, string) ([]byte, error) { return nil, e.err }
func (e errStore) Set(context.Context, string, []byte) error   { return e.err }
func (e errStore) Delete(context.Context, string) error        { return e.err }
