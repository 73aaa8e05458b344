package access

// Package access holds the pure route-access policy: a total decision
// function from (session, requested route) to an access decision. It performs
// no I/O; acting on a decision is the navigation layer's job in
// internal/http.

import (
	"strings"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// DecisionKind enumerates the possible outcomes of an access check.
type DecisionKind int

const (
	// Allow lets the request through to the panel handler.
	Allow DecisionKind = iota
	// RedirectToLogin sends the user to the login screen, carrying the
	// originally requested path so they can be returned there afterwards.
	RedirectToLogin
	// RedirectToForbidden sends the user to the forbidden screen.
	RedirectToForbidden
)

// Decision is the result of evaluating the policy for one request.
type Decision struct {
	Kind DecisionKind
	// ReturnPath is the full requested path (path+query) to return to after
	// login. Only set for RedirectToLogin.
	ReturnPath string
}

// Route identifies the requested route for a policy decision.
type Route struct {
	// Path is the URL path used for matching (no query string).
	Path string
	// FullPath is path plus raw query, preserved as the post-login return
	// target.
	FullPath string
}

// Rule restricts a path prefix to a set of roles. An empty role set means
// any authenticated user may enter.
type Rule struct {
	Prefix string
	Roles  []domainauth.Role
}

// Well-known route paths. The navigation layer and templates use the same
// constants so redirects and links stay in sync with the policy.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathForbidden = "/forbidden"
)

// publicPrefixes are reachable without authentication. The login and
// forbidden screens must stay public or the redirects targeting them would
// loop.
var publicPrefixes = []string{
	PathLogin,
	PathForbidden,
	"/static",
	"/healthz",
}

// defaultRules is the static route-access table. Longest prefix wins.
// Area prefixes cover their subtrees (e.g. /admin/users).
var defaultRules = []Rule{
	{Prefix: "/admin", Roles: []domainauth.Role{domainauth.RoleAdmin}},
	{Prefix: "/manager", Roles: []domainauth.Role{domainauth.RoleManager}},
	{Prefix: "/supervisor", Roles: []domainauth.Role{domainauth.RoleSupervisor}},
}

// Policy evaluates route access against a rule table.
type Policy struct {
	rules  []Rule
	public []string
}

// NewPolicy returns the policy over the application's static route table.
func NewPolicy() *Policy {
	return &Policy{rules: defaultRules, public: publicPrefixes}
}

// NewPolicyWithRules returns a policy over a custom table (tests).
func NewPolicyWithRules(rules []Rule, public []string) *Policy {
	return &Policy{rules: rules, public: public}
}

// Decide maps (session, route) to an access decision. Rules, in order:
// public routes are always allowed; unauthenticated users are sent to login
// with the full requested path as the return target; routes without a role
// restriction admit any authenticated user; a missing claim or a role
// outside the route's allowed set is forbidden.
func (p *Policy) Decide(sess domainauth.Session, route Route) Decision {
	if p.isPublic(route.Path) {
		return Decision{Kind: Allow}
	}

	if !sess.IsAuthenticated() {
		returnPath := route.FullPath
		if returnPath == "" {
			returnPath = route.Path
		}
		return Decision{Kind: RedirectToLogin, ReturnPath: returnPath}
	}

	rule, restricted := p.match(route.Path)
	if !restricted || len(rule.Roles) == 0 {
		return Decision{Kind: Allow}
	}

	if sess.User == nil {
		return Decision{Kind: RedirectToForbidden}
	}
	for _, r := range rule.Roles {
		if sess.User.Role == r {
			return Decision{Kind: Allow}
		}
	}
	return Decision{Kind: RedirectToForbidden}
}

func (p *Policy) isPublic(path string) bool {
	for _, prefix := range p.public {
		if matchPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (p *Policy) match(path string) (Rule, bool) {
	best := -1
	for i, rule := range p.rules {
		if !matchPrefix(path, rule.Prefix) {
			continue
		}
		if best == -1 || len(rule.Prefix) > len(p.rules[best].Prefix) {
			best = i
		}
	}
	if best == -1 {
		return Rule{}, false
	}
	return p.rules[best], true
}

// matchPrefix reports whether path equals prefix or sits under it respecting
// segment boundaries, so "/admin" matches "/admin/users" but not
// "/administrivia".
func matchPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// HomeRouteFor returns the role-specific landing route for the home-route
// dispatch, and whether the role has one. Roles without a dedicated landing
// (including unknown roles the backend may introduce) render the generic
// authenticated landing view instead.
func HomeRouteFor(role domainauth.Role) (string, bool) {
	switch role {
	case domainauth.RoleAdmin:
		return "/admin", true
	case domainauth.RoleManager:
		return "/manager", true
	case domainauth.RoleSupervisor:
		return "/supervisor", true
	default:
		return "", false
	}
}
