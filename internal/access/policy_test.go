package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

func authed(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		Token: "tok",
		User:  &domainauth.UserClaim{UserID: 1, Username: "u", Role: role},
	}
}

func TestDecidePublicRoutesAlwaysAllowed(t *testing.T) {
	p := NewPolicy()
	for _, path := range []string{"/login", "/forbidden", "/static/css/app.css", "/healthz"} {
		d := p.Decide(domainauth.Session{}, Route{Path: path, FullPath: path})
		assert.Equal(t, Allow, d.Kind, "path %s", path)
	}
}

func TestDecideUnauthenticatedRedirectsToLoginWithReturnPath(t *testing.T) {
	p := NewPolicy()
	tests := []struct {
		path     string
		fullPath string
	}{
		{"/", "/"},
		{"/admin", "/admin"},
		{"/manager/computers", "/manager/computers?status=active"},
		{"/supervisor", "/supervisor?dept=3"},
	}
	for _, tt := range tests {
		d := p.Decide(domainauth.Session{}, Route{Path: tt.path, FullPath: tt.fullPath})
		assert.Equal(t, RedirectToLogin, d.Kind, "path %s", tt.path)
		assert.Equal(t, tt.fullPath, d.ReturnPath, "path %s", tt.path)
	}
}

func TestDecideRoleTable(t *testing.T) {
	p := NewPolicy()
	tests := []struct {
		name string
		sess domainauth.Session
		path string
		want DecisionKind
	}{
		{"admin on /admin", authed(domainauth.RoleAdmin), "/admin", Allow},
		{"admin on /admin/users", authed(domainauth.RoleAdmin), "/admin/users", Allow},
		{"manager on /admin", authed(domainauth.RoleManager), "/admin", RedirectToForbidden},
		{"manager on /manager", authed(domainauth.RoleManager), "/manager", Allow},
		{"supervisor on /supervisor/reports", authed(domainauth.RoleSupervisor), "/supervisor/reports", Allow},
		{"supervisor on /manager", authed(domainauth.RoleSupervisor), "/manager", RedirectToForbidden},
		{"unknown role on /admin", authed(domainauth.Role("auditor")), "/admin", RedirectToForbidden},
		{"unknown role on home", authed(domainauth.Role("auditor")), "/", Allow},
		{"any role on home", authed(domainauth.RoleManager), "/", Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Decide(tt.sess, Route{Path: tt.path, FullPath: tt.path})
			assert.Equal(t, tt.want, d.Kind)
		})
	}
}

func TestDecideMissingClaimIsForbiddenOnRestrictedRoute(t *testing.T) {
	p := NewPolicy()
	// Token without a claim: authenticated, but no role to match.
	sess := domainauth.Session{Token: "tok"}
	assert.Equal(t, RedirectToForbidden, p.Decide(sess, Route{Path: "/admin", FullPath: "/admin"}).Kind)
	assert.Equal(t, Allow, p.Decide(sess, Route{Path: "/", FullPath: "/"}).Kind)
}

func TestMatchPrefixRespectsSegmentBoundaries(t *testing.T) {
	assert.True(t, matchPrefix("/admin", "/admin"))
	assert.True(t, matchPrefix("/admin/users", "/admin"))
	assert.False(t, matchPrefix("/administrivia", "/admin"))
}

func TestDecideLongestPrefixWins(t *testing.T) {
	rules := []Rule{
		{Prefix: "/ops", Roles: []domainauth.Role{domainauth.RoleAdmin}},
		{Prefix: "/ops/reports", Roles: []domainauth.Role{domainauth.RoleSupervisor}},
	}
	p := NewPolicyWithRules(rules, []string{"/login"})

	d := p.Decide(authed(domainauth.RoleSupervisor), Route{Path: "/ops/reports", FullPath: "/ops/reports"})
	assert.Equal(t, Allow, d.Kind)
	d = p.Decide(authed(domainauth.RoleSupervisor), Route{Path: "/ops", FullPath: "/ops"})
	assert.Equal(t, RedirectToForbidden, d.Kind)
}

func TestHomeRouteFor(t *testing.T) {
	tests := []struct {
		role   domainauth.Role
		want   string
		wantOK bool
	}{
		{domainauth.RoleAdmin, "/admin", true},
		{domainauth.RoleManager, "/manager", true},
		{domainauth.RoleSupervisor, "/supervisor", true},
		{domainauth.Role("auditor"), "", false},
		{domainauth.Role(""), "", false},
	}
	for _, tt := range tests {
		got, ok := HomeRouteFor(tt.role)
		assert.Equal(t, tt.wantOK, ok, "role %q", tt.role)
		assert.Equal(t, tt.want, got, "role %q", tt.role)
	}
}
