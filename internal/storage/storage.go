// Package storage provides the local key-value persistence layer. Each
// collection in the data core is serialized as one value under a fixed key.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Load when no value exists for the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the persistence contract for the data core. Values are opaque
// serialized collections; the store never interprets them.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
