package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
	"github.com/verdanthq/verdant-api/internal/service"
)

// summaryKeyPrefix namespaces cache entries so a shared Redis instance can
// hold other application data without collisions.
const summaryKeyPrefix = "verdant:summary:"

// dialTimeout bounds both the initial connection and the startup ping.
const dialTimeout = 5 * time.Second

// RedisSummaryCache implements the service.SummaryCache interface using a
// Redis server for storage.
type RedisSummaryCache struct {
	logger *slog.Logger
	client *goredis.Client
	ttl    time.Duration
}

// Ensure RedisSummaryCache implements the service.SummaryCache interface
var _ service.SummaryCache = (*RedisSummaryCache)(nil)

// NewRedisSummaryCache connects to the configured Redis server and verifies
// the connection with a ping before returning. The cache stores each user's
// summary for cfg.ProgressTTLSeconds.
func NewRedisSummaryCache(logger *slog.Logger, cfg config.CacheConfig) (*RedisSummaryCache, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.RedisAddr == "" {
		return nil, ErrMissingRedisAddr
	}
	if cfg.ProgressTTLSeconds <= 0 {
		return nil, ErrInvalidTTL
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisSummaryCache{
		logger: logger.With("component", "redis_summary_cache"),
		client: client,
		ttl:    time.Duration(cfg.ProgressTTLSeconds) * time.Second,
	}, nil
}

// summaryKey returns the cache key holding the user's summary.
func summaryKey(userID uuid.UUID) string {
	return summaryKeyPrefix + userID.String()
}

// GetSummary returns the cached summary for the user, or (nil, nil) on a
// miss. A stored entry that no longer decodes also reads as a miss; the
// caller recomputes and overwrites it.
func (c *RedisSummaryCache) GetSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*progress.Summary, error) {
	raw, err := c.client.Get(ctx, summaryKey(userID)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var summary progress.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		c.logger.WarnContext(ctx, "dropping unreadable cached summary",
			"user_id", userID,
			"error", err)
		return nil, nil
	}

	return &summary, nil
}

// SetSummary stores the user's summary under the configured TTL.
func (c *RedisSummaryCache) SetSummary(
	ctx context.Context,
	userID uuid.UUID,
	summary progress.Summary,
) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}

	return nil
}

// InvalidateSummary drops the user's cached summary. Deleting a key that
// does not exist is not an error.
func (c *RedisSummaryCache) InvalidateSummary(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, summaryKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to drop cached summary: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}
