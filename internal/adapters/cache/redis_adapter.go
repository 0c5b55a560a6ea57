package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizlens/backend/internal/domain/providers"
	redisclient "github.com/bizlens/backend/internal/infrastructure/clients/redis"
)

// Recent-search sets expire after this much idle time; refreshed on every add.
const recentSearchKeyTTL = 30 * 24 * time.Hour

// RedisAdapter implements the CacheProvider interface using Redis
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{
		client: client,
	}
}

// Get retrieves a value from cache
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, providers.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}
	return result, nil
}

// Set stores a value in cache with expiration
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := a.client.Client().Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

// Delete removes a value from cache
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}

// AddRecent adds a query to the user's recent-search sorted set, scored with
// the current timestamp. Re-adding an existing member only refreshes its
// score, and the set is trimmed oldest-first to maxEntries in the same
// pipeline.
func (a *RedisAdapter) AddRecent(ctx context.Context, userID, query string, maxEntries int) error {
	key := recentSearchKey(userID)

	pipe := a.client.Client().TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(time.Now().UnixMilli()),
		Member: query,
	})
	if maxEntries > 0 {
		// Keep only the maxEntries highest-scored (newest) members.
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-(maxEntries + 1)))
	}
	pipe.Expire(ctx, key, recentSearchKeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record recent search: %w", err)
	}
	return nil
}

// ListRecent returns the user's recent searches, most recent first
func (a *RedisAdapter) ListRecent(ctx context.Context, userID string) ([]string, error) {
	searches, err := a.client.Client().ZRevRange(ctx, recentSearchKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent searches: %w", err)
	}
	return searches, nil
}

// ClearRecent removes the user's entire recent-search set atomically
func (a *RedisAdapter) ClearRecent(ctx context.Context, userID string) (int, error) {
	key := recentSearchKey(userID)

	pipe := a.client.Client().TxPipeline()
	card := pipe.ZCard(ctx, key)
	pipe.Del(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear recent searches: %w", err)
	}
	return int(card.Val()), nil
}

func recentSearchKey(userID string) string {
	return "search:recent:" + userID
}
