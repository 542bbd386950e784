// Package identity is the current-user collaborator boundary. Services
// never look up authentication state themselves; the owner id is
// resolved once at the transport edge and threaded down explicitly.
package identity

import (
	"context"

	"github.com/fadhlan/shoply/internal/apperr"
)

// Resolver maps a session token to an owner id. An unknown or expired
// token resolves to apperr.ErrUnauthenticated.
type Resolver interface {
	CurrentUser(ctx context.Context, token string) (string, error)
}

// StaticResolver resolves a fixed token set. Used in tests and dev mode.
type StaticResolver map[string]string

func (r StaticResolver) CurrentUser(_ context.Context, token string) (string, error) {
	ownerID, ok := r[token]
	if !ok {
		return "", apperr.ErrUnauthenticated
	}
	return ownerID, nil
}
