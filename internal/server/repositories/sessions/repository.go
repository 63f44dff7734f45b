// Package sessions declares the repository contract for the generic session
// key/name/value store backing cookie sessions.
package sessions

import "context"

// Repository defines persistence operations for session rows.
type Repository interface {
	// Upsert stores value under (key, name), overwriting the value and the
	// modified timestamp if the pair already exists.
	Upsert(ctx context.Context, key, name, value string) error

	// Get returns the value stored under (key, name), or
	// common.ErrorNotFound when the pair is absent.
	Get(ctx context.Context, key, name string) (string, error)

	// DeleteByKey removes all rows for the given session key. Deleting a
	// nonexistent key is not an error.
	DeleteByKey(ctx context.Context, key string) error
}
