// Package ui serves the storefront and admin console pages. Handlers read the
// session and cart from the request context, call the catalog service, and
// render through the shared template set. Mutating handlers persist cookies
// before issuing their redirect.
package ui

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/checkout"
	"meenora.in/store/internal/store/cms"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/forms"
	"meenora.in/store/internal/store/httpserver/middleware"
	"meenora.in/store/internal/store/session"
	"meenora.in/store/internal/store/templates"
	"meenora.in/store/internal/store/wishlist"
)

// Config wires the handler dependencies.
type Config struct {
	Catalog   catalog.Service
	Sessions  *session.Manager
	Carts     *cart.Manager
	Wishlists *wishlist.Manager
	Flashes   *flash.Manager
	Checkout  *checkout.Service
	Content   cms.Content
	Renderer  *templates.Renderer
	Logger    *zap.Logger
}

// Handlers holds every page and form handler for the store.
type Handlers struct {
	catalog   catalog.Service
	sessions  *session.Manager
	carts     *cart.Manager
	wishlists *wishlist.Manager
	flashes   *flash.Manager
	checkout  *checkout.Service
	content   cms.Content
	renderer  *templates.Renderer
	logger    *zap.Logger
}

// New constructs the handler set. All dependencies are required except the
// logger, which defaults to a no-op.
func New(cfg Config) *Handlers {
	if cfg.Catalog == nil {
		panic("ui: catalog service is required")
	}
	if cfg.Sessions == nil {
		panic("ui: session manager is required")
	}
	if cfg.Carts == nil {
		panic("ui: cart manager is required")
	}
	if cfg.Wishlists == nil {
		panic("ui: wishlist manager is required")
	}
	if cfg.Flashes == nil {
		panic("ui: flash manager is required")
	}
	if cfg.Checkout == nil {
		panic("ui: checkout service is required")
	}
	if cfg.Renderer == nil {
		panic("ui: renderer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		catalog:   cfg.Catalog,
		sessions:  cfg.Sessions,
		carts:     cfg.Carts,
		wishlists: cfg.Wishlists,
		flashes:   cfg.Flashes,
		checkout:  cfg.Checkout,
		content:   cfg.Content,
		renderer:  cfg.Renderer,
		logger:    logger,
	}
}

// page assembles the common envelope for a render. Taking the flash here means
// it is consumed exactly once, on the page that displays it.
func (h *Handlers) page(w http.ResponseWriter, r *http.Request, title string, data any) templates.Page {
	var user *session.User
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		user = sess.User()
	}
	count := 0
	if c, ok := middleware.CartFromContext(r.Context()); ok {
		count = c.ItemsCount()
	}
	saved := 0
	if wl, ok := middleware.WishlistFromContext(r.Context()); ok {
		saved = wl.Count()
	}
	return templates.Page{
		Title:         title,
		User:          user,
		CartCount:     count,
		WishlistCount: saved,
		Flash:         h.flashes.Take(w, r),
		CSRFToken:     middleware.CSRFTokenFromContext(r.Context()),
		Path:          r.URL.Path,
		Data:          data,
	}
}

// render executes the page template. Non-200 statuses write the header before
// the body so form errors carry the right code.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, page templates.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.renderer.Render(w, name, page); err != nil {
		h.logger.Error("render page failed",
			zap.String("page", name),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handlers) session(r *http.Request) *session.Session {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		return sess
	}
	return &session.Session{}
}

func (h *Handlers) cart(r *http.Request) *cart.Cart {
	if c, ok := middleware.CartFromContext(r.Context()); ok {
		return c
	}
	return cart.New()
}

func (h *Handlers) wishlist(r *http.Request) *wishlist.Wishlist {
	if wl, ok := middleware.WishlistFromContext(r.Context()); ok {
		return wl
	}
	return wishlist.New()
}

// formData is the envelope every form template renders.
type formData struct {
	ID     string
	Action string
	Values map[string]string
	Errors forms.Errors
}

func emptyForm(action string) formData {
	return formData{Action: action, Values: map[string]string{}, Errors: forms.Errors{}}
}

// submittedValues flattens the posted values for re-rendering the form.
func submittedValues(r *http.Request, form forms.Form) map[string]string {
	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		values[field.Name] = strings.TrimSpace(r.PostFormValue(field.Name))
	}
	return values
}

// pageParam reads ?page=N, clamping anything unparsable or below one.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// safeReturnPath accepts only local absolute paths for post-login redirects.
func safeReturnPath(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}
	return raw
}

func checkboxOn(v string) bool {
	return v == "on" || v == "true" || v == "1"
}
