package ports

import "context"

// TokenStore persists the single bearer token the client holds.
type TokenStore interface {
	// Load returns the stored token, or "" with a nil error when none is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
