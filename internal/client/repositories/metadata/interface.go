// Package metadata stores small named values (the session token, for one)
// in the local SQLite database.
package metadata

import "context"

// Keys written by TokenStore.
const (
	KeyToken     = "token"
	KeyLastEmail = "last_email"
)

// Repository is a key/value store over the metadata table.
//
// Get returns (nil, nil) for a missing key so callers can tell "never set"
// from a read failure. Set overwrites.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var _ Repository = (*SQLiteRepository)(nil)
