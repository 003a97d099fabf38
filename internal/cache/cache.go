// Package cache holds fetched collections for the view layer, keyed by the
// scope they were fetched for. A mutation invalidates exactly one key, so
// switching account types never refetches data that did not change.
package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/granahq/grana/internal/transaction"
)

// Key identifies one cached collection: one user's ledger for one account type.
type Key struct {
	UserID      uuid.UUID
	AccountType transaction.AccountType
}

// FetchFunc loads the collection from the source of truth.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection caches lists of T per Key.
type Collection[T any] struct {
	mu      sync.Mutex
	entries map[Key][]T
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{entries: make(map[Key][]T)}
}

// Get returns the cached list for key, fetching on a miss. Fetch errors are
// returned to the caller and nothing is cached.
func (c *Collection[T]) Get(ctx context.Context, key Key, fetch FetchFunc[T]) ([]T, error) {
	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()

	if ok {
		return cached, nil
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = items
	c.mu.Unlock()

	return items, nil
}

// Invalidate discards the cached list for key only; other keys stay warm.
func (c *Collection[T]) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll empties the cache, e.g. on sign-out.
func (c *Collection[T]) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[Key][]T)
	c.mu.Unlock()
}
