// Package rds provides a Redis client used as the append-only blob backend
package rds

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Config configures the Redis client
type Config struct {
	// URL is a redis:// connection string, e.g. redis://localhost:6379/0
	URL string

	// PoolSize caps pooled connections; zero keeps the driver default
	PoolSize int
}

// RDS is a thin wrapper over the go-redis client
type RDS struct {
	Client *redis.Client
}

// Open parses the URL and connects. The caller is expected to Ping before
// relying on the connection; Open itself does not block on the server.
func Open(_ context.Context, cfg Config) (*RDS, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	return &RDS{Client: redis.NewClient(opts)}, nil
}

// Ping verifies connectivity
func (r *RDS) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close closes the underlying client
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
