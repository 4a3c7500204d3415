package session

// Role is the access tier attached to an authenticated account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// State describes where the session is in its lifecycle. Loading only occurs
// while rehydration is still in flight; once Load returns, a session is either
// Unauthenticated or Authenticated.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// User captures the authenticated account persisted alongside the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session holds the authenticated identity for the current request. The token
// and user move together: Login sets both, Logout clears both, and a decoded
// session missing either half is discarded whole.
type Session struct {
	token     string
	user      *User
	dirty     bool
	destroyed bool
}

// Login sets the session identity atomically.
func (s *Session) Login(user *User, token string) {
	if user == nil || token == "" {
		return
	}
	copied := *user
	s.user = &copied
	s.token = token
	s.destroyed = false
	s.dirty = true
}

// Logout clears the identity and marks the stored values for removal.
func (s *Session) Logout() {
	s.token = ""
	s.user = nil
	s.destroyed = true
	s.dirty = true
}

// Token returns the opaque auth token, empty when unauthenticated.
func (s *Session) Token() string {
	return s.token
}

// User returns the authenticated user, nil when unauthenticated.
func (s *Session) User() *User {
	return s.user
}

// IsAdmin reports whether the session belongs to an admin account. False when
// no session is established.
func (s *Session) IsAdmin() bool {
	return s.user.IsAdmin()
}

// State reports the session lifecycle state.
func (s *Session) State() State {
	if s.destroyed || s.token == "" || s.user == nil {
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// Authenticated reports whether both token and user are present.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// Dirty reports whether the session changed during this request.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Destroyed reports whether the stored values should be removed on save.
func (s *Session) Destroyed() bool {
	return s.destroyed
}
