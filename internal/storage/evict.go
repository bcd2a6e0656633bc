package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// defaultTrimCount is how many of the oldest records a quota recovery drops.
const defaultTrimCount = 25

// evicting recovers from quota errors on collection writes: it drops the
// oldest records from the value being written and retries once. The source
// application repeated this catch/trim/retry loop at every call site; here it
// lives below the components as a single decorator.
type evicting struct {
	Store
	trim int
}

// WithEviction wraps a Store with trim-and-retry quota recovery. trim <= 0
// selects the default trim count.
func WithEviction(s Store, trim int) Store {
	if trim <= 0 {
		trim = defaultTrimCount
	}
	return &evicting{Store: s, trim: trim}
}

func (e *evicting) Set(ctx context.Context, key string, value []byte) error {
	err := e.Store.Set(ctx, key, value)
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	// Only JSON array values can be trimmed; anything else keeps the
	// original quota error.
	var items []json.RawMessage
	if jerr := json.Unmarshal(value, &items); jerr != nil {
		return err
	}

	drop := e.trim
	if drop > len(items) {
		drop = len(items)
	}
	trimmed, jerr := json.Marshal(items[drop:])
	if jerr != nil {
		return err
	}
	return e.Store.Set(ctx, key, trimmed)
}
