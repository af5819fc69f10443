package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet-service/internal/repository"
)

const dashboardStatsKeyPrefix = "fleet:dashboard:stats:"

// statsKey scopes a snapshot to the day its daily revenue covers.
func statsKey(day time.Time) string {
	return dashboardStatsKeyPrefix + day.Format("2006-01-02")
}

// NewRedisClient connects to REDIS_URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// StatsCache holds the dashboard snapshot for a short TTL.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context, day time.Time) (*repository.DashboardStats, bool, error) {
	data, err := c.client.Get(ctx, statsKey(day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var stats repository.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return &stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, day time.Time, stats *repository.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(day), data, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context, day time.Time) error {
	return c.client.Del(ctx, statsKey(day)).Err()
}
