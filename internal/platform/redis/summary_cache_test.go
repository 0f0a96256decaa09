package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdanthq/verdant-api/internal/ciutil"
	"github.com/verdanthq/verdant-api/internal/config"
	"github.com/verdanthq/verdant-api/internal/domain/progress"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestCache connects to the Redis server named by VERDANT_TEST_REDIS_ADDR,
// skipping the test when none is configured.
func newTestCache(t *testing.T) *RedisSummaryCache {
	t.Helper()

	addr := os.Getenv(ciutil.EnvVerdantTestRedisAddr)
	if addr == "" {
		t.Skipf("set %s to run Redis cache tests", ciutil.EnvVerdantTestRedisAddr)
	}

	cache, err := NewRedisSummaryCache(testLogger(), config.CacheConfig{
		RedisAddr:          addr,
		ProgressTTLSeconds: 60,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Errorf("failed to close cache: %v", err)
		}
	})

	return cache
}

func TestNewRedisSummaryCache_Validation(t *testing.T) {
	validConfig := config.CacheConfig{
		RedisAddr:          "localhost:6379",
		ProgressTTLSeconds: 60,
	}

	t.Run("nil logger is rejected", func(t *testing.T) {
		cache, err := NewRedisSummaryCache(nil, validConfig)

		assert.Nil(t, cache)
		assert.ErrorIs(t, err, ErrNilLogger)
	})

	t.Run("missing address is rejected", func(t *testing.T) {
		cfg := validConfig
		cfg.RedisAddr = ""

		cache, err := NewRedisSummaryCache(testLogger(), cfg)

		assert.Nil(t, cache)
		assert.ErrorIs(t, err, ErrMissingRedisAddr)
	})

	t.Run("non-positive TTL is rejected", func(t *testing.T) {
		cfg := validConfig
		cfg.ProgressTTLSeconds = 0

		cache, err := NewRedisSummaryCache(testLogger(), cfg)

		assert.Nil(t, cache)
		assert.ErrorIs(t, err, ErrInvalidTTL)
	})

	t.Run("unreachable server fails the startup ping", func(t *testing.T) {
		cfg := validConfig
		cfg.RedisAddr = "127.0.0.1:1"

		cache, err := NewRedisSummaryCache(testLogger(), cfg)

		assert.Nil(t, cache)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis ping")
	})
}

func TestSummaryKey(t *testing.T) {
	userID := uuid.MustParse("a1b2c3d4-e5f6-4a89-9abc-def012345678")

	assert.Equal(t, "verdant:summary:a1b2c3d4-e5f6-4a89-9abc-def012345678", summaryKey(userID))
}

func TestRedisSummaryCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	// A user with no cached entry reads as a miss
	got, err := cache.GetSummary(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	summary := progress.Summary{
		CurrentStreak:    4,
		LongestStreak:    9,
		TotalCompletions: 40,
	}
	require.NoError(t, cache.SetSummary(ctx, userID, summary))

	got, err = cache.GetSummary(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, summary, *got)

	// The stored key carries the configured TTL
	ttl, err := cache.client.TTL(ctx, summaryKey(userID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 60*time.Second)

	// Entries are keyed per user
	otherID := uuid.New()
	got, err = cache.GetSummary(ctx, otherID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Invalidation drops the entry
	require.NoError(t, cache.InvalidateSummary(ctx, userID))
	got, err = cache.GetSummary(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Invalidating an absent entry is not an error
	require.NoError(t, cache.InvalidateSummary(ctx, userID))
}

func TestRedisSummaryCache_UnreadableEntry(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	// Plant an entry that is not valid JSON
	require.NoError(t, cache.client.Set(ctx, summaryKey(userID), "not-json{", time.Minute).Err())

	got, err := cache.GetSummary(ctx, userID)

	require.NoError(t, err)
	assert.Nil(t, got)
}
