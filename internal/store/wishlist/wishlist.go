// Package wishlist holds the products a visitor has saved for later. Like the
// cart it lives entirely in a signed client cookie; the server keeps no state.
package wishlist

// Item is one saved product. Enough of the catalog record is kept to render
// the list without a fetch per item.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

// Wishlist is an ordered set of saved products, at most one item per product.
type Wishlist struct {
	items []Item
	dirty bool
}

// New returns an empty wishlist.
func New() *Wishlist {
	return &Wishlist{}
}

// FromItems rebuilds a wishlist from persisted items, dropping entries without
// a product ID and collapsing duplicates to the first occurrence.
func FromItems(items []Item) *Wishlist {
	w := &Wishlist{}
	for _, item := range items {
		if item.ProductID == "" || w.Contains(item.ProductID) {
			continue
		}
		w.items = append(w.items, item)
	}
	return w
}

// Add saves the product. Adding a product already on the list is a no-op and
// reports false so the caller can tell the visitor it was already there.
func (w *Wishlist) Add(item Item) bool {
	if item.ProductID == "" || w.Contains(item.ProductID) {
		return false
	}
	w.items = append(w.items, item)
	w.dirty = true
	return true
}

// Remove drops the product from the list if present.
func (w *Wishlist) Remove(productID string) {
	idx := w.index(productID)
	if idx < 0 {
		return
	}
	w.items = append(w.items[:idx], w.items[idx+1:]...)
	w.dirty = true
}

// Contains reports whether the product is on the list.
func (w *Wishlist) Contains(productID string) bool {
	return w.index(productID) >= 0
}

// Items returns a copy of the saved products in insertion order.
func (w *Wishlist) Items() []Item {
	return append([]Item(nil), w.items...)
}

// Count returns the number of saved products.
func (w *Wishlist) Count() int {
	return len(w.items)
}

// Empty reports whether nothing is saved.
func (w *Wishlist) Empty() bool {
	return len(w.items) == 0
}

// Dirty reports whether the list changed since it was loaded.
func (w *Wishlist) Dirty() bool {
	return w.dirty
}

func (w *Wishlist) index(productID string) int {
	for i, item := range w.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
