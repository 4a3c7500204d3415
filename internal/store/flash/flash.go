// Package flash carries one-shot notifications across a redirect. The message
// is written as a signed cookie and cleared on the render that consumes it,
// the cookie-backed equivalent of a toast notification.
package flash

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const defaultCookieName = "meenora_flash"

// Kind is the tone of a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Message is one pending notification.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Manager encodes flash messages into a short-lived cookie.
type Manager struct {
	cookieName string
	codec      *securecookie.SecureCookie
	secure     bool
}

// NewManager constructs a Manager with the given signing keys.
func NewManager(hashKey, blockKey []byte, secure bool) (*Manager, error) {
	if len(hashKey) == 0 {
		return nil, errors.New("flash: hash key is required")
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &Manager{cookieName: defaultCookieName, codec: codec, secure: secure}, nil
}

// Set queues a notification for the next render.
func (m *Manager) Set(w http.ResponseWriter, kind Kind, format string, args ...any) {
	msg := Message{Kind: kind, Text: fmt.Sprintf(format, args...)}
	encoded, err := m.codec.Encode(m.cookieName, msg)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

// Take returns the pending notification, if any, and clears it.
func (m *Manager) Take(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	var msg Message
	if err := m.codec.Decode(m.cookieName, cookie.Value, &msg); err != nil {
		return nil
	}
	return &msg
}
