package store

import "context"

// KeyValueStore is durable string storage for the cart snapshot.
// Get reports false, with a nil error, when the key has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
