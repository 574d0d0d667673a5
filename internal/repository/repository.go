package repository

import "context"

// Repository is a named-slot key-value store. The session archive keeps its
// whole serialized form in one slot and overwrites it on every mutation, so
// implementations only need whole-value reads and writes.
type Repository interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
