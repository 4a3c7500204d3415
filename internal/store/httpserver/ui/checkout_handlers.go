package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/checkout"
	"meenora.in/store/internal/store/flash"
)

// CheckoutForm renders the order summary and shipping form. An empty cart has
// nothing to check out and goes back to the cart page.
func (h *Handlers) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r)
	if c.Empty() {
		h.flashes.Set(w, flash.Info, "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, "checkout", h.page(w, r, "Checkout", struct {
		Lines []cart.Line
		Total float64
	}{c.Lines(), c.Total()}))
}

// CheckoutSubmit places the order with mock payment, clears the cart, and
// lands on the confirmation page.
func (h *Handlers) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	user := h.session(r).User()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	c := h.cart(r)
	order, err := h.checkout.Place(user.ID, c)
	if err != nil {
		h.flashes.Set(w, flash.Info, "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c.Clear()
	if err := h.carts.Save(w, c); err != nil {
		h.logger.Error("clear cart failed", zap.String("order", order.ID), zap.Error(err))
	}

	h.flashes.Set(w, flash.Success, "Order %s placed. Thank you!", order.ID)
	http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
}

// OrderDetail renders the confirmation page for one of the customer's orders.
func (h *Handlers) OrderDetail(w http.ResponseWriter, r *http.Request) {
	user := h.session(r).User()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id := chi.URLParam(r, "id")
	var found *checkout.Order
	for _, order := range h.checkout.History(user.ID) {
		if order.ID == id {
			o := order
			found = &o
			break
		}
	}
	if found == nil {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, http.StatusOK, "checkout_done", h.page(w, r, "Order placed", struct {
		Order *checkout.Order
	}{found}))
}
