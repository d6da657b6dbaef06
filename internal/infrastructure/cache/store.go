package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("cache: key not found")

// Store is a key-value snapshot store. Values are opaque byte payloads;
// callers own the serialization.
type Store interface {
	// Get returns the payload stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the payload under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
