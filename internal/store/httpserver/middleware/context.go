// Package middleware carries the request-scoped plumbing for the storefront:
// session and cart attachment, route guarding and CSRF protection.
package middleware

import (
	"context"
	"net/http"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/session"
	"meenora.in/store/internal/store/wishlist"
)

type contextKey string

const (
	sessionContextKey  contextKey = "store.session"
	cartContextKey     contextKey = "store.cart"
	wishlistContextKey contextKey = "store.wishlist"
)

// Session rehydrates the visitor session and attaches it to the request
// context. Handlers that change the session must persist it through the
// manager before writing the response; cookies cannot be set once the body
// has started.
func Session(sessions *session.Manager) func(http.Handler) http.Handler {
	if sessions == nil {
		panic("session manager is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Load(r)
			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	return sess, ok && sess != nil
}

// Cart decodes the visitor cart and attaches it to the request context. Like
// the session, mutations are persisted by the handler, not here.
func Cart(carts *cart.Manager) func(http.Handler) http.Handler {
	if carts == nil {
		panic("cart manager is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := carts.Load(r)
			ctx := context.WithValue(r.Context(), cartContextKey, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartFromContext retrieves the cart attached to this request.
func CartFromContext(ctx context.Context) (*cart.Cart, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(cartContextKey).(*cart.Cart)
	return c, ok && c != nil
}

// Wishlist decodes the visitor wishlist and attaches it to the request
// context. Mutations are persisted by the handler, not here.
func Wishlist(wishlists *wishlist.Manager) func(http.Handler) http.Handler {
	if wishlists == nil {
		panic("wishlist manager is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wl := wishlists.Load(r)
			ctx := context.WithValue(r.Context(), wishlistContextKey, wl)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WishlistFromContext retrieves the wishlist attached to this request.
func WishlistFromContext(ctx context.Context) (*wishlist.Wishlist, bool) {
	if ctx == nil {
		return nil, false
	}
	wl, ok := ctx.Value(wishlistContextKey).(*wishlist.Wishlist)
	return wl, ok && wl != nil
}
