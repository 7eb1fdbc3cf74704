package cache

import (
	"context"
	"time"
)

// Store is a small key-value cache with expiration. The meeting service uses
// it for short-lived dashboard counters; either Redis or the in-memory store
// can back it.
type Store interface {
	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key, value string, expiration time.Duration) error

	// Get retrieves a value by key; the bool reports whether it was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error
}
