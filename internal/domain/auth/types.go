package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of adapter/transport concerns.

// Role represents an application authorization role.
// Kept as a string for easy persistence and template use. The set below is
// the closed set this client knows; the backend may introduce others, which
// the access policy treats as matching no restricted route.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
)

// KnownRole reports whether r is one of the roles this client recognises.
func KnownRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSupervisor:
		return true
	default:
		return false
	}
}

// UserClaim is the cached snapshot of the authenticated user, captured from
// the backend login response.
type UserClaim struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Session is the authentication state kept for one browser session: the
// bearer token issued by the backend plus the cached user claim. A zero
// Session means unauthenticated. The claim is optional; a token can exist
// without one (e.g. a value that failed to decode fully), but never the
// other way around.
type Session struct {
	Token string     `json:"token"`
	User  *UserClaim `json:"user,omitempty"`
}

// IsAuthenticated reports whether the session carries a bearer token.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// Role returns the cached role claim, or the empty role when no claim is
// present.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
