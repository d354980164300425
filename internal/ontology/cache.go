package ontology

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// Cache stores fetched ontology documents by URL: an expirable in-memory LRU
// always, and a Redis tier when an address is configured so repeated runs on
// the same host skip the network. Entries hold the raw bytes, so a hit is
// byte-identical to a fetch.
type Cache struct {
	lru *expirable.LRU[string, []byte]
	cli *redis.Client
	ttl time.Duration
}

// NewCache builds the cache. redisAddr may be empty for in-memory only.
func NewCache(redisAddr string, ttl time.Duration) (*Cache, error) {
	c := &Cache{
		lru: expirable.NewLRU[string, []byte](32, nil, ttl),
		ttl: ttl,
	}
	if redisAddr != "" {
		cli := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := cli.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		c.cli = cli
	}
	return c, nil
}

// Get returns the cached document for url, if present in either tier.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool) {
	if b, ok := c.lru.Get(url); ok {
		return b, true
	}
	if c.cli == nil {
		return nil, false
	}
	b, err := c.cli.Get(ctx, "ontology:"+url).Bytes()
	if err != nil {
		return nil, false
	}
	c.lru.Add(url, b)
	return b, true
}

// Put stores a fetched document in both tiers. Redis failures are ignored;
// the cache is an optimization, not a source of truth.
func (c *Cache) Put(ctx context.Context, url string, b []byte) {
	c.lru.Add(url, b)
	if c.cli != nil {
		_ = c.cli.Set(ctx, "ontology:"+url, b, c.ttl).Err()
	}
}

// Ping reports Redis connectivity; nil when Redis is not configured.
func (c *Cache) Ping() error {
	if c.cli == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.cli.Ping(ctx).Err()
}
