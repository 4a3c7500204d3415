package cart

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName = "meenora_cart"
	defaultCookiePath = "/"
	defaultLifetime   = 30 * 24 * time.Hour
)

// ErrInvalidConfig indicates the manager was initialised with missing or invalid options.
var ErrInvalidConfig = errors.New("cart: invalid config")

// Config controls cookie encoding for the cart manager.
type Config struct {
	CookieName   string
	HashKey      []byte
	BlockKey     []byte
	CookiePath   string
	CookieDomain string
	CookieSecure bool
	Lifetime     time.Duration
	Now          func() time.Time
}

// Manager persists the cart line list as a signed cookie. The cookie holds the
// full list as a JSON array; every mutation is followed by a Save writing the
// complete state back to the client.
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
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
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

// Load decodes the cart from the incoming request. A missing or malformed
// cookie yields an empty cart rather than an error.
func (m *Manager) Load(r *http.Request) *Cart {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return New()
	}

	var stored []Line
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return New()
	}
	return FromLines(stored)
}

// Save writes the full line list back to the response. An empty cart clears
// the cookie so stale state never outlives a Clear.
func (m *Manager) Save(w http.ResponseWriter, c *Cart) error {
	if c == nil {
		return errors.New("cart: nil cart")
	}

	if c.Empty() {
		http.SetCookie(w, m.expiredCookie())
		return nil
	}

	encoded, err := m.codec.Encode(m.cfg.CookieName, c.Lines())
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  m.now().Add(m.cfg.Lifetime).UTC(),
	})
	return nil
}

func (m *Manager) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
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
