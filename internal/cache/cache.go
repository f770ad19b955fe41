// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itsatony/swat_playback/internal/config"
	"github.com/itsatony/swat_playback/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const keyPrefix = "swat:history:"

// HistoryCache stores computed history windows
type HistoryCache interface {
	Get(ctx context.Context, key string) ([]models.HistoryPoint, bool, error)
	Set(ctx context.Context, key string, points []models.HistoryPoint) error
}

// RedisHistoryCache keeps history windows in Redis with a TTL
type RedisHistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisHistoryCache connects to Redis and verifies the connection
func NewRedisHistoryCache(ctx context.Context, cfg config.RedisConfig) (*RedisHistoryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.Addr(), err)
	}
	nuts.L.Infof("[Cache] Connected to redis %s/%d", cfg.Addr(), cfg.DB)
	return NewRedisHistoryCacheFromClient(client, cfg.TTL), nil
}

// NewRedisHistoryCacheFromClient wraps an existing client
func NewRedisHistoryCacheFromClient(client *redis.Client, ttl time.Duration) *RedisHistoryCache {
	return &RedisHistoryCache{client: client, ttl: ttl}
}

// Get returns the cached window for key. A miss is not an error.
func (c *RedisHistoryCache) Get(ctx context.Context, key string) ([]models.HistoryPoint, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	points, err := Decode(raw)
	if err != nil {
		return nil, false, err
	}
	return points, true, nil
}

// Set stores the window under key
func (c *RedisHistoryCache) Set(ctx context.Context, key string, points []models.HistoryPoint) error {
	raw, err := Encode(points)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err()
}

// Close releases the Redis connection pool
func (c *RedisHistoryCache) Close() error {
	return c.client.Close()
}

// Encode serializes points; NaN values become null
func Encode(points []models.HistoryPoint) ([]byte, error) {
	return json.Marshal(points)
}

// Decode reverses Encode; null values come back as NaN
func Decode(raw []byte) ([]models.HistoryPoint, error) {
	var points []models.HistoryPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []models.HistoryPoint{}
	}
	return points, nil
}

// Key builds the cache key of a history window. generation identifies the
// loaded snapshot, so entries from an earlier process are never read back.
func Key(generation int64, mode models.HistoryMode, deviceID string, endIndex, seconds int) string {
	return fmt.Sprintf("%d:%s:%s:%d:%d", generation, mode, deviceID, endIndex, seconds)
}
