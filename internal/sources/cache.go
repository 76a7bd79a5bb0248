package sources

import (
	"context"
	"errors"
	"time"

	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type cached struct {
	next Fetcher
	rdb  *redis.Client
	ttl  time.Duration
}

// Cached wraps f so successful lines are kept in Redis for ttl. Redis
// failures fall through to the live source.
func Cached(f Fetcher, rdb *redis.Client, ttl time.Duration) Fetcher {
	return &cached{next: f, rdb: rdb, ttl: ttl}
}

func (c *cached) Name() string { return c.next.Name() }

func (c *cached) Fetch(ctx context.Context, location string) (string, error) {
	key := "ctx:" + c.next.Name() + ":" + location
	v, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, redis.Nil) {
		logger.Debugf("context cache read %s: %v", key, err)
	}
	line, err := c.next.Fetch(ctx, location)
	if err != nil {
		return "", err
	}
	if err := c.rdb.Set(ctx, key, line, c.ttl).Err(); err != nil {
		logger.Debugf("context cache write %s: %v", key, err)
	}
	return line, nil
}
