package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("key not found")

// Store is the durable, string-keyed persistence surface the local store
// manager writes through. Operations are synchronous from the caller's view.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
