// Package redis wraps the go-redis client behind the platform config.
// Redis backs session retention and the enrichment content cache; both
// degrade to in-process fallbacks when it is absent, so New treats an
// empty URL as "not configured" rather than an error.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"edupath/internal/platform/config"
	dErrors "edupath/pkg/domain-errors"
)

const connectTimeout = 5 * time.Second

// Client wraps the go-redis client.
type Client struct {
	*redis.Client
}

// New creates a Redis client and verifies connectivity. Returns (nil, nil)
// when no URL is configured.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "parse redis URL")
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "redis ping")
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection is usable.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
