package ports

// Package ports defines interfaces (hexagonal ports) for session persistence.
// Implementations live in internal/adapters; consumers in internal/backend
// and internal/http.

import (
	"context"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// SessionStore persists the per-browser-session authentication state (bearer
// token plus cached user claim), keyed by an opaque session ID.
//
// The contract mirrors the replace-or-clear lifecycle of the session:
//   - Save replaces the whole stored value; there are no partial updates.
//   - Read never fails: on a miss, an expired entry, or any underlying
//     storage error it returns the zero (unauthenticated) session.
//   - Clear is idempotent; clearing an absent session is a no-op.
type SessionStore interface {
	Save(ctx context.Context, id string, sess domainauth.Session) error
	Read(ctx context.Context, id string) domainauth.Session
	Clear(ctx context.Context, id string) error
}
