package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tasktracker/tasktracker-go/internal/model"
)

const (
	keyRecentPosts = "tasktracker:posts:recent:"
	keyGeneration  = "tasktracker:posts:gen"
)

// PostCache caches the newest-first post list in Redis.
//
// Lists are stored under the generation current when they were read from the
// database. Invalidate bumps the generation, so a list loaded before a write
// can still be stored but is never served afterwards.
type PostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPostCache returns a new PostCache.
func NewPostCache(rdb *redis.Client, ttl time.Duration) *PostCache {
	return &PostCache{rdb: rdb, ttl: ttl}
}

// Generation returns the current list generation. It is 0 until the first
// Invalidate.
func (c *PostCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetRecent returns the list cached for gen, or nil on a miss.
func (c *PostCache) GetRecent(ctx context.Context, gen int64) ([]model.Post, error) {
	b, err := c.rdb.Get(ctx, recentKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	posts := []model.Post{}
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SetRecent stores the list read while gen was current.
func (c *PostCache) SetRecent(ctx context.Context, gen int64, posts []model.Post) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, recentKey(gen), b, c.ttl).Err()
}

// Invalidate retires every cached list. Called after every post write.
func (c *PostCache) Invalidate(ctx context.Context) (int64, error) {
	return c.rdb.Incr(ctx, keyGeneration).Result()
}

func recentKey(gen int64) string {
	return keyRecentPosts + strconv.FormatInt(gen, 10)
}
