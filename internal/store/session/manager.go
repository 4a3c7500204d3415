package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/securecookie"
)

const (
	defaultTokenCookieName = "meenora_token"
	defaultUserCookieName  = "meenora_user"
	defaultCookiePath      = "/"
	defaultLifetime        = 12 * time.Hour
)

// ErrInvalidConfig indicates the manager was initialised with missing or invalid options.
var ErrInvalidConfig = errors.New("session: invalid config")

// Config controls cookie encoding and lifetime for the session manager.
type Config struct {
	TokenCookieName string
	UserCookieName  string
	HashKey         []byte
	BlockKey        []byte
	CookiePath      string
	CookieDomain    string
	CookieSecure    bool
	Lifetime        time.Duration
	Now             func() time.Time
}

// Manager persists the session as two cookie values: the raw auth token and
// the user profile JSON. Both are signed; rehydration only succeeds when both
// decode and the token still looks like a well-formed JWT, otherwise the pair
// is discarded and the request proceeds unauthenticated.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if cfg.TokenCookieName == "" {
		cfg.TokenCookieName = defaultTokenCookieName
	}
	if cfg.UserCookieName == "" {
		cfg.UserCookieName = defaultUserCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{cfg: cfg, codec: codec, now: nowFn}, nil
}

// New returns an empty unauthenticated session.
func (m *Manager) New() *Session {
	return &Session{}
}

// Load rehydrates the session from the incoming request. Partial state (a
// token without a user, a user without a token, or a token failing the format
// check) never yields a half-authenticated session: both halves are dropped.
func (m *Manager) Load(r *http.Request) *Session {
	token, okToken := m.decodeToken(r)
	user, okUser := m.decodeUser(r)
	if !okToken || !okUser {
		return &Session{}
	}
	if !TokenLooksValid(token) {
		return &Session{}
	}
	return &Session{token: token, user: user}
}

// Save writes the session back to the response. Destroyed or empty sessions
// clear both cookies so neither value can outlive the other.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if s == nil {
		return errors.New("session: nil session")
	}

	if s.Destroyed() || !s.Authenticated() {
		http.SetCookie(w, m.expiredCookie(m.cfg.TokenCookieName))
		http.SetCookie(w, m.expiredCookie(m.cfg.UserCookieName))
		return nil
	}

	encodedToken, err := m.codec.Encode(m.cfg.TokenCookieName, s.token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	encodedUser, err := m.codec.Encode(m.cfg.UserCookieName, s.user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	expires := m.now().Add(m.cfg.Lifetime).UTC()
	http.SetCookie(w, m.cookie(m.cfg.TokenCookieName, encodedToken, expires))
	http.SetCookie(w, m.cookie(m.cfg.UserCookieName, encodedUser, expires))
	return nil
}

// Destroy clears both session cookies immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, m.expiredCookie(m.cfg.TokenCookieName))
	http.SetCookie(w, m.expiredCookie(m.cfg.UserCookieName))
}

// TokenLooksValid performs the minimal format check applied on rehydration:
// the token must parse as a JWT without signature verification. Verification
// proper happens on the backend when the token is presented.
func TokenLooksValid(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	return err == nil
}

func (m *Manager) decodeToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cfg.TokenCookieName)
	if err != nil {
		return "", false
	}
	var token string
	if err := m.codec.Decode(m.cfg.TokenCookieName, cookie.Value, &token); err != nil {
		return "", false
	}
	return token, token != ""
}

func (m *Manager) decodeUser(r *http.Request) (*User, bool) {
	cookie, err := r.Cookie(m.cfg.UserCookieName)
	if err != nil {
		return nil, false
	}
	var user User
	if err := m.codec.Decode(m.cfg.UserCookieName, cookie.Value, &user); err != nil {
		return nil, false
	}
	if user.ID == "" {
		return nil, false
	}
	return &user, true
}

func (m *Manager) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	}
}

func (m *Manager) expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
