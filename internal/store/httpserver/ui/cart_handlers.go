package ui

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/flash"
)

type cartData struct {
	Lines []cart.Line
	Total float64
}

// CartView renders the cart page.
func (h *Handlers) CartView(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r)
	h.render(w, r, http.StatusOK, "cart", h.page(w, r, "Your cart", cartData{
		Lines: c.Lines(),
		Total: c.Total(),
	}))
}

// CartAdd puts a product in the cart. Name and price come from the catalog,
// never from the form; the client only names the product.
func (h *Handlers) CartAdd(w http.ResponseWriter, r *http.Request) {
	productID := r.PostFormValue("product_id")
	if productID == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	quantity := 1
	if raw := r.PostFormValue("quantity"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			quantity = n
		}
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.flashes.Set(w, flash.Error, "That product is no longer available.")
			http.Redirect(w, r, "/shop", http.StatusSeeOther)
			return
		}
		h.logger.Error("get product failed", zap.String("id", productID), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not add to cart. Please try again.")
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	c := h.cart(r)
	c.Add(product.ID, product.Name, product.Price, quantity)
	if err := h.carts.Save(w, c); err != nil {
		h.logger.Error("save cart failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.flashes.Set(w, flash.Success, "%s added to your cart.", product.Name)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartUpdate sets a line's quantity. Zero or below removes the line.
func (h *Handlers) CartUpdate(w http.ResponseWriter, r *http.Request) {
	productID := r.PostFormValue("product_id")
	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if productID == "" || err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	c := h.cart(r)
	c.UpdateQuantity(productID, quantity)
	if err := h.carts.Save(w, c); err != nil {
		h.logger.Error("save cart failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartRemove drops one line from the cart.
func (h *Handlers) CartRemove(w http.ResponseWriter, r *http.Request) {
	productID := r.PostFormValue("product_id")
	if productID == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	c := h.cart(r)
	c.Remove(productID)
	if err := h.carts.Save(w, c); err != nil {
		h.logger.Error("save cart failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartClear empties the cart.
func (h *Handlers) CartClear(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r)
	c.Clear()
	if err := h.carts.Save(w, c); err != nil {
		h.logger.Error("save cart failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.flashes.Set(w, flash.Info, "Your cart has been cleared.")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
