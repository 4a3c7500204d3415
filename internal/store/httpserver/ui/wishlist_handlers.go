package ui

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/wishlist"
)

// WishlistView renders the saved-products page.
func (h *Handlers) WishlistView(w http.ResponseWriter, r *http.Request) {
	wl := h.wishlist(r)
	h.render(w, r, http.StatusOK, "wishlist", h.page(w, r, "Wishlist", struct {
		Items []wishlist.Item
	}{wl.Items()}))
}

// WishlistAdd saves a product for later. A product already on the list stays
// there once; the visitor is told instead of the list growing.
func (h *Handlers) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	productID := r.PostFormValue("product_id")
	if productID == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	returnTo := safeReturnPath(r.PostFormValue("next"), "/products/"+productID)

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.flashes.Set(w, flash.Error, "That product is no longer available.")
			http.Redirect(w, r, "/shop", http.StatusSeeOther)
			return
		}
		h.logger.Error("get product failed", zap.String("id", productID), zap.Error(err))
		h.flashes.Set(w, flash.Error, "Could not update your wishlist. Please try again.")
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
		return
	}

	wl := h.wishlist(r)
	if !wl.Add(wishlist.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
	}) {
		h.flashes.Set(w, flash.Info, "%s is already in your wishlist.", product.Name)
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
		return
	}

	if err := h.wishlists.Save(w, wl); err != nil {
		h.logger.Error("save wishlist failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.flashes.Set(w, flash.Success, "%s added to your wishlist.", product.Name)
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// WishlistRemove drops a product from the list.
func (h *Handlers) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	productID := r.PostFormValue("product_id")
	if productID == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	wl := h.wishlist(r)
	wl.Remove(productID)
	if err := h.wishlists.Save(w, wl); err != nil {
		h.logger.Error("save wishlist failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.flashes.Set(w, flash.Info, "Removed from your wishlist.")
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("next"), "/wishlist"), http.StatusSeeOther)
}
