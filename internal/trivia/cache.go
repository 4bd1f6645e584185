package trivia

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// Cache keeps category listings in Redis. Categories are read-only through this API,
// so entries only expire by TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl, prefix: "trivia:categories"}
}

func (c *Cache) key(order string) string {
	return c.prefix + ":" + order
}

func (c *Cache) Get(ctx context.Context, order string) ([]Category, error) {
	data, err := c.client.Get(ctx, c.key(order)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, order string, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(order), data, c.ttl).Err()
}
