package ui

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/checkout"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/forms"
	"meenora.in/store/internal/store/session"
	"meenora.in/store/internal/store/wishlist"
)

// LoginForm renders the storefront login portal. Visitors already signed in
// skip straight to their destination.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.session(r).Authenticated() {
		http.Redirect(w, r, safeReturnPath(r.URL.Query().Get("next"), "/dashboard"), http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "login", h.page(w, r, "Sign in", emptyForm("/login")))
}

// LoginSubmit authenticates against the catalog backend. Admin accounts are
// bounced to their own portal without establishing a session.
func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := formData{
		Action: "/login",
		Values: submittedValues(r, forms.Login),
		Errors: forms.Login.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "login", h.page(w, r, "Sign in", data))
		return
	}

	auth, err := h.catalog.Login(r.Context(), data.Values["email"], r.PostFormValue("password"))
	if err != nil {
		h.renderLoginFailure(w, r, "login", "Sign in", data, err)
		return
	}

	if auth.User.Role == session.RoleAdmin {
		h.flashes.Set(w, flash.Info, "Please sign in through the admin portal.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	sess := h.session(r)
	sess.Login(&auth.User, auth.Token)
	if err := h.sessions.Save(w, sess); err != nil {
		h.logger.Error("save session failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.flashes.Set(w, flash.Success, "Welcome back, %s.", auth.User.Name)
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("next"), "/"), http.StatusSeeOther)
}

// AdminLoginForm renders the admin portal.
func (h *Handlers) AdminLoginForm(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	if sess.Authenticated() && sess.IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "admin_login", h.page(w, r, "Admin sign in", emptyForm("/admin/login")))
}

// AdminLoginSubmit authenticates an administrator. Customer accounts are
// rejected here; the portals do not cross.
func (h *Handlers) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := formData{
		Action: "/admin/login",
		Values: submittedValues(r, forms.Login),
		Errors: forms.Login.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "admin_login", h.page(w, r, "Admin sign in", data))
		return
	}

	auth, err := h.catalog.Login(r.Context(), data.Values["email"], r.PostFormValue("password"))
	if err != nil {
		h.renderLoginFailure(w, r, "admin_login", "Admin sign in", data, err)
		return
	}

	if auth.User.Role != session.RoleAdmin {
		page := h.page(w, r, "Admin sign in", data)
		page.Flash = &flash.Message{Kind: flash.Error, Text: "This portal is for administrators only."}
		h.render(w, r, http.StatusForbidden, "admin_login", page)
		return
	}

	sess := h.session(r)
	sess.Login(&auth.User, auth.Token)
	if err := h.sessions.Save(w, sess); err != nil {
		h.logger.Error("save session failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handlers) renderLoginFailure(w http.ResponseWriter, r *http.Request, tmpl, title string, data formData, err error) {
	if errors.Is(err, catalog.ErrUnauthorized) {
		page := h.page(w, r, title, data)
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Invalid email or password."}
		h.render(w, r, http.StatusUnauthorized, tmpl, page)
		return
	}
	h.logger.Error("login failed", zap.Error(err))
	page := h.page(w, r, title, data)
	page.Flash = &flash.Message{Kind: flash.Error, Text: "Sign in is unavailable right now. Please try again."}
	h.render(w, r, http.StatusBadGateway, tmpl, page)
}

// SignupForm renders the account creation page.
func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	if h.session(r).Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "signup", h.page(w, r, "Sign up", emptyForm("/signup")))
}

// SignupSubmit registers a new customer account and signs them in.
func (h *Handlers) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	data := formData{
		Action: "/signup",
		Values: submittedValues(r, forms.Signup),
		Errors: forms.Signup.Validate(r.PostForm),
	}
	if !data.Errors.Valid() {
		h.render(w, r, http.StatusUnprocessableEntity, "signup", h.page(w, r, "Sign up", data))
		return
	}

	auth, err := h.catalog.Register(r.Context(), catalog.RegisterInput{
		Name:     data.Values["name"],
		Email:    data.Values["email"],
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.logger.Error("register failed", zap.Error(err))
		page := h.page(w, r, "Sign up", data)
		page.Flash = &flash.Message{Kind: flash.Error, Text: "Could not create your account. Please try again."}
		h.render(w, r, http.StatusBadGateway, "signup", page)
		return
	}

	sess := h.session(r)
	sess.Login(&auth.User, auth.Token)
	if err := h.sessions.Save(w, sess); err != nil {
		h.logger.Error("save session failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.flashes.Set(w, flash.Success, "Welcome to Meenora, %s.", auth.User.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookies and returns to the landing page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	sess.Logout()
	if err := h.sessions.Save(w, sess); err != nil {
		h.logger.Error("save session failed", zap.Error(err))
	}

	h.flashes.Set(w, flash.Info, "You have been signed out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard renders the customer profile and order history. The stored token
// is revalidated against the backend; a rejected token ends the session.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	user := sess.User()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if refreshed, err := h.catalog.Profile(r.Context(), sess.Token()); err == nil {
		user = refreshed
	} else if errors.Is(err, catalog.ErrUnauthorized) {
		sess.Logout()
		if err := h.sessions.Save(w, sess); err != nil {
			h.logger.Error("save session failed", zap.Error(err))
		}
		h.flashes.Set(w, flash.Info, "Your session has expired. Please sign in again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	} else {
		// A flaky backend must not sign people out; render from the cookie.
		h.logger.Warn("profile refresh failed", zap.Error(err))
	}

	page := h.page(w, r, "Dashboard", struct {
		Orders   []checkout.Order
		Wishlist []wishlist.Item
	}{h.checkout.History(user.ID), h.wishlist(r).Items()})
	page.User = user
	h.render(w, r, http.StatusOK, "dashboard", page)
}
