// Package repo binds the generator to the platform blob and audit backends
package repo

import (
	"context"
	"errors"

	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/store"
)

// Blobs implements domain.BlobPort on the redis blob seam
type Blobs struct {
	kv store.Blobs
}

// NewBlobs binds the redis blob seam
func NewBlobs(kv store.Blobs) *Blobs {
	if kv == nil {
		panic("generator repo: nil blob seam")
	}
	return &Blobs{kv: kv}
}

// Append adds a chunk to the batch at key and returns the new total size
func (b *Blobs) Append(ctx context.Context, key string, chunk []byte) (int64, error) {
	n, err := b.kv.Append(ctx, key, chunk)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "blob append %s", key)
	}
	return n, nil
}

// ReadRange reads bytes [start, end] of the batch; end -1 means through the
// final byte
func (b *Blobs) ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error) {
	data, err := b.kv.ReadRange(ctx, key, start, end)
	if errors.Is(err, store.ErrBlobNotFound) {
		return nil, perr.NotFoundf("no batch at %s", key)
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "blob read %s", key)
	}
	return data, nil
}

// Size returns the batch size in bytes
func (b *Blobs) Size(ctx context.Context, key string) (int64, error) {
	n, err := b.kv.Size(ctx, key)
	if errors.Is(err, store.ErrBlobNotFound) {
		return 0, perr.NotFoundf("no batch at %s", key)
	}
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "blob size %s", key)
	}
	return n, nil
}
