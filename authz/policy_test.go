package authz_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/skillsenselab/identity/auth/authctx"
	"github.com/skillsenselab/identity/authz"
	"github.com/skillsenselab/identity/errors"
)

func testPolicy() *authz.Policy {
	return authz.NewPolicy(
		authz.Rule{Method: http.MethodPost, Pattern: "/api/auth/login", Require: authz.Public()},
		authz.Rule{Method: http.MethodGet, Pattern: "/api/users/all", Require: authz.Role("ADMIN")},
		authz.Rule{Method: http.MethodPost, Pattern: "/api/webhooks", Require: authz.Public()},
		authz.Rule{Method: "*", Pattern: "/health", Require: authz.Public()},
	)
}

func userPrincipal(scopes ...string) authctx.Principal {
	return authctx.Principal{Subject: uuid.New(), Email: "alice@example.com", Scopes: scopes}
}

func TestMatch_FirstMatchWins(t *testing.T) {
	p := authz.NewPolicy(
		authz.Rule{Method: "*", Pattern: "/api/things/**", Require: authz.Public()},
		authz.Rule{Method: "*", Pattern: "/api/things/secret", Require: authz.Role("ADMIN")},
	)
	req := p.Match(http.MethodGet, "/api/things/secret")
	if req.Level != authz.LevelPublic {
		t.Error("earlier rule must shadow later rule")
	}
}

func TestMatch_DefaultDeniesAnonymous(t *testing.T) {
	p := testPolicy()
	req := p.Match(http.MethodGet, "/api/unlisted")
	if req.Level != authz.LevelAuthenticated {
		t.Error("unmatched routes must require authentication")
	}
}

func TestMatch_MethodScoped(t *testing.T) {
	p := testPolicy()
	// Rules bind to one method; other methods fall through to the default.
	if p.Match(http.MethodPost, "/api/webhooks").Level != authz.LevelPublic {
		t.Error("POST /api/webhooks should be public")
	}
	if p.Match(http.MethodGet, "/api/webhooks").Level != authz.LevelAuthenticated {
		t.Error("GET /api/webhooks should require authentication")
	}
}

func TestAuthorize_PublicAllowsAnonymous(t *testing.T) {
	p := testPolicy()
	if err := p.Authorize(http.MethodPost, "/api/auth/login", authctx.Principal{}, false); err != nil {
		t.Errorf("public route must allow anonymous callers: %v", err)
	}
}

func TestAuthorize_AnonymousOnGuardedRoute(t *testing.T) {
	p := testPolicy()
	err := p.Authorize(http.MethodGet, "/api/unlisted", authctx.Principal{}, false)
	if err == nil {
		t.Fatal("expected denial for anonymous caller")
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", appErr.HTTPStatus)
	}
}

func TestAuthorize_RoleGate(t *testing.T) {
	p := testPolicy()

	// USER role is not enough.
	err := p.Authorize(http.MethodGet, "/api/users/all", userPrincipal("ROLE_USER"), true)
	if err == nil {
		t.Fatal("expected denial for missing ADMIN role")
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.HTTPStatus != http.StatusForbidden {
		t.Errorf("expected 403, got %d", appErr.HTTPStatus)
	}

	// ADMIN role passes.
	if err := p.Authorize(http.MethodGet, "/api/users/all", userPrincipal("ROLE_USER", "ROLE_ADMIN"), true); err != nil {
		t.Errorf("expected ADMIN to pass: %v", err)
	}

	// Anonymous on a role-gated route is 401, not 403.
	err = p.Authorize(http.MethodGet, "/api/users/all", authctx.Principal{}, false)
	appErr, _ = errors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous, got %v", err)
	}
}

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/users", "/api/users", true},
		{"/api/users", "/api/users/123", false},
		{"/api/users/*", "/api/users/123", true},
		{"/api/users/*", "/api/users", false},
		{"/api/users/*", "/api/users/123/roles", false},
		{"/api/users/**", "/api/users", true},
		{"/api/users/**", "/api/users/123/roles", true},
		{"/api/users/**", "/api/usersuffix", false},
		{"/api/*/all", "/api/users/all", true},
	}
	for _, tc := range cases {
		if got := authz.MatchPath(tc.pattern, tc.path); got != tc.want {
			t.Errorf("MatchPath(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}
