package store

import (
	"context"
	"errors"

	"cardsmith/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

// newRDSAdapter wraps an existing *rds.RDS and returns the store.Blobs seam
func newRDSAdapter(r *rds.RDS) Blobs {
	return &rdsAdapter{inner: r}
}

// rdsAdapter adapts *rds.RDS to the store.Blobs interface
type rdsAdapter struct {
	inner *rds.RDS
}

var _ Blobs = (*rdsAdapter)(nil)

func (a *rdsAdapter) Append(ctx context.Context, key string, chunk []byte) (int64, error) {
	return a.inner.Client.Append(ctx, key, string(chunk)).Result()
}

func (a *rdsAdapter) ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error) {
	v, err := a.inner.Client.GetRange(ctx, key, start, end).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (a *rdsAdapter) Size(ctx context.Context, key string) (int64, error) {
	n, err := a.inner.Client.StrLen(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// distinguish empty from absent
		exists, err := a.inner.Client.Exists(ctx, key).Result()
		if err != nil {
			return 0, err
		}
		if exists == 0 {
			return 0, ErrBlobNotFound
		}
	}
	return n, nil
}

func (a *rdsAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := a.inner.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping verifies connectivity with Redis
func (a *rdsAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil redis adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *rdsAdapter) Close() error { return a.inner.Close() }
