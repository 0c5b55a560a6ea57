package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/bizlens/backend/internal/domain/entities"
	"github.com/bizlens/backend/internal/domain/providers"
	apperrors "github.com/bizlens/backend/pkg/errors"
)

type fakeCatalog struct {
	mu      sync.Mutex
	results []*entities.BusinessResult
	err     error
	calls   int
}

func (f *fakeCatalog) Search(ctx context.Context, query entities.SearchQuery) ([]*entities.BusinessResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePlaces struct {
	places []*providers.Place
	err    error
	delay  time.Duration
}

func (f *fakePlaces) TextSearch(ctx context.Context, query string, near *entities.GeoPoint, radiusMeters float64) ([]*providers.Place, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, apperrors.NewExternalError("places request failed", ctx.Err())
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.places, nil
}

type recentEntry struct {
	query string
	score int64
}

// fakeCache is an in-memory CacheProvider mirroring the redis adapter's
// contract: TTL-less key-value entries plus a per-user scored recent set.
type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	recent map[string][]recentEntry
	clock  int64
	fail   bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:   make(map[string][]byte),
		recent: make(map[string][]recentEntry),
	}
}

var errCacheDown = errors.New("cache store down")

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errCacheDown
	}
	value, ok := f.data[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errCacheDown
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errCacheDown
	}
	delete(f.data, key)
	return nil
}

func (f *fakeCache) AddRecent(ctx context.Context, userID, query string, maxEntries int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errCacheDown
	}

	f.clock++
	entries := f.recent[userID]

	updated := false
	for i := range entries {
		if entries[i].query == query {
			entries[i].score = f.clock
			updated = true
			break
		}
	}
	if !updated {
		entries = append(entries, recentEntry{query: query, score: f.clock})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].score > entries[j].score })
	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	f.recent[userID] = entries
	return nil
}

func (f *fakeCache) ListRecent(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errCacheDown
	}
	entries := f.recent[userID]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.query
	}
	return out, nil
}

func (f *fakeCache) ClearRecent(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, errCacheDown
	}
	count := len(f.recent[userID])
	delete(f.recent, userID)
	return count, nil
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []*entities.SearchHistoryEntry
	err     error
}

func (f *fakeHistory) Append(ctx context.Context, entry *entities.SearchHistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistory) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.SearchHistoryEntry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}

	matched := []*entities.SearchHistoryEntry{}
	for _, entry := range f.entries {
		if entry.UserID == userID {
			matched = append(matched, entry)
		}
	}
	total := len(matched)

	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeHistory) all() []*entities.SearchHistoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.SearchHistoryEntry, len(f.entries))
	copy(out, f.entries)
	return out
}
