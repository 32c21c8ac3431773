package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Karthikraja2345/ksmatri/internal/logger"
)

// Cache is a redis read-through cache for by-id profile lookups. Entries
// always hold the full record; redaction happens after the fetch. Cache
// failures are logged and treated as misses, never surfaced to callers.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		prefix: "profile:",
	}
}

func (c *Cache) key(id primitive.ObjectID) string {
	return c.prefix + id.Hex()
}

func (c *Cache) Get(ctx context.Context, id primitive.ObjectID) (*Profile, bool) {
	val, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("profile cache read failed", map[string]any{
			"error": err.Error(),
		})
		return nil, false
	}

	var p Profile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *Cache) Set(ctx context.Context, p *Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(p.ID), data, c.ttl).Err(); err != nil {
		logger.Warn("profile cache write failed", map[string]any{
			"error": err.Error(),
		})
	}
}

func (c *Cache) Invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		logger.Warn("profile cache invalidation failed", map[string]any{
			"error": err.Error(),
		})
	}
}
