// Package testutil spins up the full store HTTP stack against the in-memory
// catalog for integration tests.
package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/checkout"
	"meenora.in/store/internal/store/cms"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/httpserver"
	"meenora.in/store/internal/store/session"
	"meenora.in/store/internal/store/wishlist"
)

var testHashKey = []byte("0123456789abcdef0123456789abcdef")

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithCatalog overrides the catalog service backing the server.
func WithCatalog(service catalog.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Catalog = service
	}
}

// WithCheckout wires a custom checkout service, usually one with a fixed clock.
func WithCheckout(service *checkout.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Checkout = service
	}
}

// WithContent overrides the marketing copy.
func WithContent(content cms.Content) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Content = content
	}
}

// NewServer constructs an httptest server running the store HTTP stack with
// the seeded static catalog and deterministic cookie keys.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	sessions, err := session.NewManager(session.Config{HashKey: testHashKey, Lifetime: time.Hour})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	carts, err := cart.NewManager(cart.Config{HashKey: testHashKey, Lifetime: time.Hour})
	if err != nil {
		t.Fatalf("cart manager: %v", err)
	}
	wishlists, err := wishlist.NewManager(wishlist.Config{HashKey: testHashKey, Lifetime: time.Hour})
	if err != nil {
		t.Fatalf("wishlist manager: %v", err)
	}
	flashes, err := flash.NewManager(testHashKey, nil, false)
	if err != nil {
		t.Fatalf("flash manager: %v", err)
	}

	cfg := httpserver.Config{
		Addr:      ":0",
		Catalog:   catalog.NewStatic(),
		Sessions:  sessions,
		Carts:     carts,
		Wishlists: wishlists,
		Flashes:   flashes,
		Checkout:  checkout.NewService(nil),
		Content:   cms.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
