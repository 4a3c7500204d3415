package session

import "testing"

func TestLoginSetsBothHalves(t *testing.T) {
	s := &Session{}
	s.Login(&User{ID: "u-1", Name: "Priya", Email: "priya@example.com", Role: RoleUser}, "token-1")

	if s.State() != StateAuthenticated {
		t.Fatalf("expected authenticated state, got %v", s.State())
	}
	if s.Token() != "token-1" {
		t.Fatalf("unexpected token %q", s.Token())
	}
	if s.User() == nil || s.User().ID != "u-1" {
		t.Fatalf("expected user to be stored")
	}
	if !s.Dirty() {
		t.Fatalf("expected session to be dirty after login")
	}
}

func TestLoginIgnoresPartialIdentity(t *testing.T) {
	s := &Session{}

	s.Login(nil, "token-1")
	if s.Authenticated() {
		t.Fatalf("nil user must not authenticate")
	}

	s.Login(&User{ID: "u-1"}, "")
	if s.Authenticated() {
		t.Fatalf("empty token must not authenticate")
	}
}

func TestLogoutClearsBothHalves(t *testing.T) {
	s := &Session{}
	s.Login(&User{ID: "u-1", Role: RoleUser}, "token-1")
	s.Logout()

	if s.State() != StateUnauthenticated {
		t.Fatalf("expected unauthenticated state, got %v", s.State())
	}
	if s.Token() != "" || s.User() != nil {
		t.Fatalf("expected token and user to be cleared")
	}
	if !s.Destroyed() {
		t.Fatalf("expected session to be marked destroyed")
	}
}

func TestIsAdmin(t *testing.T) {
	s := &Session{}
	if s.IsAdmin() {
		t.Fatalf("empty session must not be admin")
	}

	s.Login(&User{ID: "u-1", Role: RoleUser}, "token-1")
	if s.IsAdmin() {
		t.Fatalf("customer must not be admin")
	}

	s.Login(&User{ID: "u-2", Role: RoleAdmin}, "token-2")
	if !s.IsAdmin() {
		t.Fatalf("admin role must report admin")
	}
}

func TestLoginCopiesUser(t *testing.T) {
	s := &Session{}
	u := &User{ID: "u-1", Name: "Priya", Role: RoleUser}
	s.Login(u, "token-1")

	u.Name = "changed"
	if s.User().Name != "Priya" {
		t.Fatalf("session must hold its own copy of the user")
	}
}
