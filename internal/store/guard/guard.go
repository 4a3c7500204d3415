// Package guard decides whether a navigation is allowed for the current
// session. The decision is a pure synchronous function re-evaluated on every
// request and on every session change; redirects carry no retry semantics.
package guard

import (
	"meenora.in/store/internal/store/session"
)

// Decision is the outcome of evaluating a route against the session.
type Decision int

const (
	// Allow renders the requested page.
	Allow Decision = iota
	// Defer renders a loading placeholder until rehydration settles.
	Defer
	// RedirectToLogin sends the visitor to the login page.
	RedirectToLogin
	// RedirectToRoleHome sends an authenticated non-admin to their home page.
	RedirectToRoleHome
)

// String names the decision for logs and test failure output.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Defer:
		return "defer"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToRoleHome:
		return "redirect-to-role-home"
	default:
		return "unknown"
	}
}

// Requirement describes what a route demands of the session.
type Requirement struct {
	Auth  bool
	Admin bool
}

// Public requires nothing of the visitor.
var Public = Requirement{}

// Authenticated requires a signed-in account of any role.
var Authenticated = Requirement{Auth: true}

// AdminOnly requires a signed-in admin account.
var AdminOnly = Requirement{Auth: true, Admin: true}

// Decide evaluates the decision table for one navigation.
func Decide(state session.State, user *session.User, req Requirement) Decision {
	if state == session.StateLoading {
		return Defer
	}
	if !req.Auth {
		return Allow
	}
	if state != session.StateAuthenticated {
		return RedirectToLogin
	}
	if req.Admin && !user.IsAdmin() {
		return RedirectToRoleHome
	}
	return Allow
}
