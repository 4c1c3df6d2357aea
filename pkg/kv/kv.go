// Package kv is the persistence layer for the dashboard state: a flat
// key-value namespace where each key holds one whole JSON-serialized
// collection, overwritten in full on every write.
package kv

import "context"

// Store abstracts the key-value backend.
type Store interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
