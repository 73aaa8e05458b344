package httpx

import (
	"context"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across
// packages. Centralized in this file so all handlers and middleware use the
// same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// Zero-value sessions are not stored.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	if !session.IsAuthenticated() {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the session from context and a boolean
// indicating presence.
func GetUserSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(domainauth.Session); ok {
		return session, true
	}
	return domainauth.Session{}, false
}

// GetSessionFromContext retrieves the session from the request context,
// returning the zero session when absent.
func GetSessionFromContext(ctx context.Context) domainauth.Session {
	s, _ := GetUserSessionFromContext(ctx)
	return s
}
