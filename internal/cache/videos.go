package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vidora/internal/model"
)

const (
	// VideoListKey is the Redis key for the cached video listing
	VideoListKey = "cache:videos:list"

	// VideoListTTL keeps the listing fresh enough that view counts do not
	// lag far behind the database
	VideoListTTL = 30 * time.Second
)

// VideoListCache defines the interface for the video listing cache.
// Using an interface enables testing with mocks and potential future backends.
type VideoListCache interface {
	// Get returns the cached listing. A miss returns (nil, nil).
	Get(ctx context.Context) ([]model.Video, error)

	// Set stores the listing with the standard TTL.
	Set(ctx context.Context, videos []model.Video) error

	// Invalidate drops the cached listing. Called on any write that would
	// change what the listing shows.
	Invalidate(ctx context.Context) error
}

// RedisVideoListCache implements VideoListCache using a single JSON value.
type RedisVideoListCache struct {
	client *redis.Client
}

// NewVideoListCache creates a new VideoListCache backed by Redis.
func NewVideoListCache(client *redis.Client) VideoListCache {
	return &RedisVideoListCache{client: client}
}

func (c *RedisVideoListCache) Get(ctx context.Context) ([]model.Video, error) {
	data, err := c.client.Get(ctx, VideoListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video list cache: %w", err)
	}

	var videos []model.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		// A corrupt entry is treated as a miss after dropping it.
		_ = c.client.Del(ctx, VideoListKey).Err()
		return nil, nil
	}

	return videos, nil
}

func (c *RedisVideoListCache) Set(ctx context.Context, videos []model.Video) error {
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("marshal video list: %w", err)
	}

	if err := c.client.Set(ctx, VideoListKey, data, VideoListTTL).Err(); err != nil {
		return fmt.Errorf("set video list cache: %w", err)
	}
	return nil
}

func (c *RedisVideoListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, VideoListKey).Err(); err != nil {
		return fmt.Errorf("invalidate video list cache: %w", err)
	}
	return nil
}
