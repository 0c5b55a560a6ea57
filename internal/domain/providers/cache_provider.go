package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent
var ErrCacheMiss = errors.New("cache: key not found")

// CacheProvider defines the key-value store used by the search engine for
// the short-TTL result cache and the per-user recent-search set.
type CacheProvider interface {
	// Get retrieves a value from cache; ErrCacheMiss when absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// AddRecent records a raw query string in the user's recent-search set,
	// scored to now. Re-adding an existing query refreshes its score rather
	// than duplicating it; entries beyond maxEntries are evicted oldest-first.
	AddRecent(ctx context.Context, userID, query string, maxEntries int) error

	// ListRecent returns the user's recent searches, most recent first
	ListRecent(ctx context.Context, userID string) ([]string, error)

	// ClearRecent removes the user's entire recent-search set atomically and
	// returns how many entries were removed
	ClearRecent(ctx context.Context, userID string) (int, error)
}
