// Package kvstore provides the durable key-value stores the tracker mirrors
// its collections into: Redis, a local SQLite file, and memory.
package kvstore

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_store.go -package=kvstoremock github.com/KirkDiggler/rpg-skillcheck/internal/kvstore Store

// Store is a flat key-value store holding one opaque record per key
type Store interface {
	// Get returns the record stored under key, or a NotFound error
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the record stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection
	Close() error
}
