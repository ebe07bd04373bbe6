// Package tokens persists the session token in the local database under a
// fixed key, so a restart does not force re-authentication.
package tokens

import "context"

// Repository stores named string values. The session token lives under a
// single well-known key; Get returns "" when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
