package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsAuthenticated(t *testing.T) {
	assert.False(t, Session{}.IsAuthenticated())
	assert.False(t, Session{User: &UserClaim{Role: RoleAdmin}}.IsAuthenticated())
	assert.True(t, Session{Token: "tok-123"}.IsAuthenticated())
}

func TestSessionRole(t *testing.T) {
	assert.Equal(t, Role(""), Session{Token: "tok"}.Role())
	sess := Session{Token: "tok", User: &UserClaim{Role: RoleManager}}
	assert.Equal(t, RoleManager, sess.Role())
}

func TestKnownRole(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleManager, true},
		{RoleSupervisor, true},
		{Role("auditor"), false},
		{Role(""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KnownRole(tt.role), "role %q", tt.role)
	}
}
