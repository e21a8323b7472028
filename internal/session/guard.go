package session

import (
	"net/url"

	"assoblog/internal/entity"
)

const (
	SignInTarget       = "/login"
	UnauthorizedTarget = "/unauthorized"
)

// Decision is the outcome of an authorization check. A denied decision
// carries the redirect target the routing layer should send the client to.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Authorize gates an action behind a set-valued role requirement. Matching is
// exact set membership, not hierarchical: admin does not satisfy a check that
// requires exactly author.
//
// No session redirects to sign-in with the requested path preserved for the
// post-login redirect. An authenticated session with the wrong role redirects
// to the unauthorized target instead, never back to sign-in.
func Authorize(required entity.RoleSet, sess *entity.Session, role entity.Role, requestedPath string) Decision {
	if sess == nil {
		return Decision{Redirect: SignInRedirect(requestedPath)}
	}
	if required.Contains(role) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: UnauthorizedTarget}
}

// SignInRedirect builds the sign-in target encoding the originally requested
// path so the client can return there after authenticating.
func SignInRedirect(requestedPath string) string {
	if requestedPath == "" {
		return SignInTarget
	}
	return SignInTarget + "?next=" + url.QueryEscape(requestedPath)
}
