package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Answers are sampled at temperature 0.9, so a cached answer is
// one of many plausible ones; a short TTL keeps repeat questions cheap
// without pinning a single sample forever.
const (
	VideoCacheTTL  = 15 * time.Minute
	AnswerCacheTTL = 1 * time.Hour

	// AcquireLockTTL bounds how long a crashed acquirer can block others.
	// Audio download plus transcription can legitimately take minutes.
	AcquireLockTTL = 10 * time.Minute
)

// CacheService provides a Redis cache-aside layer for video metadata and
// answers, plus a single-flight lock around transcript acquisition. A nil
// client turns every operation into a no-op so the service degrades to
// uncached operation when Redis is absent.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService connects to Redis. If redisURL is empty or the connection
// fails, caching and locking are disabled rather than fatal.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// NewCacheServiceWithClient wires an existing client (tests use miniredis).
func NewCacheServiceWithClient(rdb *redis.Client) *CacheService {
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Get retrieves a cached value. Returns nil when absent or cache disabled.
func (c *CacheService) Get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// Set stores a JSON-encoded value under key with the given TTL.
func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Invalidate removes a key from the cache.
func (c *CacheService) Invalidate(ctx context.Context, key string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}

// AcquireLock takes the single-flight acquisition lock for a video via
// SET NX with a TTL. When Redis is disabled the lock always succeeds and
// acquisition degrades to at-least-once, the pre-lock behavior.
func (c *CacheService) AcquireLock(ctx context.Context, videoID string) (bool, error) {
	if c.rdb == nil {
		return true, nil
	}
	return c.rdb.SetNX(ctx, lockKey(videoID), 1, AcquireLockTTL).Result()
}

// ReleaseLock drops the acquisition lock. Best effort; the TTL cleans up
// after a crashed holder.
func (c *CacheService) ReleaseLock(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, lockKey(videoID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// VideoKey is the cache key for video metadata.
func VideoKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}

func lockKey(videoID string) string {
	return fmt.Sprintf("acquire:%s", videoID)
}
