package authz

import (
	"github.com/skillsenselab/identity/auth"
	"github.com/skillsenselab/identity/auth/authctx"
	"github.com/skillsenselab/identity/errors"
)

// Level is the kind of access a route demands.
type Level int

const (
	// LevelPublic routes are always allowed.
	LevelPublic Level = iota
	// LevelAuthenticated routes require any non-anonymous principal.
	LevelAuthenticated
	// LevelRole routes require a principal carrying a specific scope.
	LevelRole
)

// Requirement describes what a route demands of the caller.
type Requirement struct {
	Level Level
	// Scope is the required authorization scope when Level is LevelRole.
	Scope string
}

// Public allows every caller, anonymous included.
func Public() Requirement {
	return Requirement{Level: LevelPublic}
}

// Authenticated allows any non-anonymous principal.
func Authenticated() Requirement {
	return Requirement{Level: LevelAuthenticated}
}

// Role allows principals carrying the scope for the given role name
// (role "ADMIN" demands scope "ROLE_ADMIN").
func Role(role string) Requirement {
	return Requirement{Level: LevelRole, Scope: auth.Scope(role)}
}

// Rule binds a method+path pattern to a requirement.
// Method "*" matches every method; see MatchPath for pattern syntax.
type Rule struct {
	Method  string
	Pattern string
	Require Requirement
}

// Policy is the static route authorization table.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from an ordered rule list.
// Earlier rules shadow later ones.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Match returns the requirement for a request. The first matching rule wins;
// unmatched routes require authentication.
func (p *Policy) Match(method, path string) Requirement {
	for _, r := range p.rules {
		if !methodMatches(r.Method, method) {
			continue
		}
		if MatchPath(r.Pattern, path) {
			return r.Require
		}
	}
	return Authenticated()
}

// Authorize checks the request against the policy table. anonymous requests
// on guarded routes yield 401; authenticated requests missing a required
// scope yield 403. A nil return means the request may proceed.
func (p *Policy) Authorize(method, path string, principal authctx.Principal, authenticated bool) error {
	req := p.Match(method, path)
	switch req.Level {
	case LevelPublic:
		return nil
	case LevelAuthenticated:
		if !authenticated {
			return errors.Unauthorized("")
		}
		return nil
	default:
		if !authenticated {
			return errors.Unauthorized("")
		}
		if !principal.HasScope(req.Scope) {
			return errors.Forbidden("")
		}
		return nil
	}
}

func methodMatches(pattern, method string) bool {
	return pattern == "*" || pattern == method
}
