// Package statscache caches computed monthly habit statistics in
// Redis. Entries are invalidated when completion events arrive, so a
// stats read between mutations is a single cache hit.
package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/followthru/followthru/internal/habits/application/queries"
	"github.com/followthru/followthru/internal/shared/infrastructure/eventbus"
)

const defaultTTL = 24 * time.Hour

// RedisStatsCache implements queries.StatsCache on Redis.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStatsCache creates a cache from a Redis URL, e.g.
// "redis://localhost:6379/0". A zero ttl falls back to 24 hours.
func NewRedisStatsCache(url string, ttl time.Duration, logger *slog.Logger) (*RedisStatsCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisStatsCache{client: client, ttl: ttl, logger: logger}, nil
}

func statsKey(habitID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("stats:habit:%s:%04d-%02d", habitID, year, int(month))
}

// Get returns the cached stats, or nil, nil on a miss.
func (c *RedisStatsCache) Get(ctx context.Context, habitID uuid.UUID, year int, month time.Month) (*queries.MonthlyStatsDTO, error) {
	data, err := c.client.Get(ctx, statsKey(habitID, year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats queries.MonthlyStatsDTO
	if err := json.Unmarshal(data, &stats); err != nil {
		// A corrupt entry is treated as a miss.
		c.logger.Warn("dropping unreadable stats cache entry", "habit_id", habitID, "error", err)
		_ = c.client.Del(ctx, statsKey(habitID, year, month)).Err()
		return nil, nil
	}
	return &stats, nil
}

// Set stores the stats with the cache TTL.
func (c *RedisStatsCache) Set(ctx context.Context, stats *queries.MonthlyStatsDTO) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(stats.HabitID, stats.Year, stats.Month), data, c.ttl).Err()
}

// InvalidateHabit removes every cached month for a habit.
func (c *RedisStatsCache) InvalidateHabit(ctx context.Context, habitID uuid.UUID) error {
	pattern := fmt.Sprintf("stats:habit:%s:*", habitID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the Redis connection.
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

// habitEvent is the slice of a published event payload the
// invalidation consumer cares about.
type habitEvent struct {
	HabitID uuid.UUID `json:"habit_id"`
}

// RegisterInvalidation subscribes cache invalidation to the habit
// mutation events on the in-process bus.
func RegisterInvalidation(bus *eventbus.InProcessBus, cache *RedisStatsCache, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	handler := func(ctx context.Context, routingKey string, payload []byte) error {
		var event habitEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("failed to decode %s event: %w", routingKey, err)
		}
		if event.HabitID == uuid.Nil {
			return nil
		}
		if err := cache.InvalidateHabit(ctx, event.HabitID); err != nil {
			return fmt.Errorf("failed to invalidate stats for habit %s: %w", event.HabitID, err)
		}
		logger.Debug("stats cache invalidated", "habit_id", event.HabitID, "routing_key", routingKey)
		return nil
	}

	for _, key := range []string{"habit.completion_logged", "habit.updated", "habit.deleted"} {
		bus.Subscribe(key, handler)
	}
}
