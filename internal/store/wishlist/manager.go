package wishlist

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName = "meenora_wishlist"
	defaultCookiePath = "/"
	defaultLifetime   = 90 * 24 * time.Hour
)

// ErrInvalidConfig indicates the manager was initialised with missing or invalid options.
var ErrInvalidConfig = errors.New("wishlist: invalid config")

// Config controls cookie encoding for the wishlist manager.
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

// Manager persists the saved-product list as a signed cookie holding a JSON
// array, written in full after every mutation.
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

// Load decodes the wishlist from the incoming request. A missing or malformed
// cookie yields an empty list rather than an error.
func (m *Manager) Load(r *http.Request) *Wishlist {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return New()
	}

	var stored []Item
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return New()
	}
	return FromItems(stored)
}

// Save writes the full item list back to the response. An empty list clears
// the cookie.
func (m *Manager) Save(w http.ResponseWriter, wl *Wishlist) error {
	if wl == nil {
		return errors.New("wishlist: nil wishlist")
	}

	if wl.Empty() {
		http.SetCookie(w, m.expiredCookie())
		return nil
	}

	encoded, err := m.codec.Encode(m.cfg.CookieName, wl.Items())
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
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
