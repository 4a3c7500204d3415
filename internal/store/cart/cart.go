package cart

// Line is a single product+quantity pair held in the cart.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the current line items. All operations are total functions over
// the line list: unknown product IDs are no-ops and nothing here performs I/O.
// At most one line exists per product ID, and no line carries a quantity
// below one.
type Cart struct {
	lines []Line
	dirty bool
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromLines builds a cart from previously persisted lines, dropping any entry
// that would violate the quantity or uniqueness invariants.
func FromLines(lines []Line) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity < 1 {
			continue
		}
		if idx := c.index(line.ProductID); idx >= 0 {
			c.lines[idx].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add puts quantity units of the product into the cart. A line for the same
// product merges by summing quantities. Quantities below one default to one.
func (c *Cart) Add(productID, name string, price float64, quantity int) {
	if productID == "" {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	if idx := c.index(productID); idx >= 0 {
		c.lines[idx].Quantity += quantity
		c.dirty = true
		return
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
	})
	c.dirty = true
}

// UpdateQuantity sets the quantity for the given product. A quantity of zero
// or less removes the line entirely. Unknown product IDs are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	idx := c.index(productID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		c.dirty = true
		return
	}
	if c.lines[idx].Quantity != quantity {
		c.lines[idx].Quantity = quantity
		c.dirty = true
	}
}

// Remove deletes the line for the given product if present.
func (c *Cart) Remove(productID string) {
	idx := c.index(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	c.dirty = true
}

// Clear empties the cart. Used after checkout completes.
func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = nil
	c.dirty = true
}

// Total returns the sum of price multiplied by quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// ItemsCount returns the sum of quantities over all lines.
func (c *Cart) ItemsCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the current line list.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Line returns the line for the given product, if present.
func (c *Cart) Line(productID string) (Line, bool) {
	if idx := c.index(productID); idx >= 0 {
		return c.lines[idx], true
	}
	return Line{}, false
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Dirty reports whether the cart changed since it was loaded.
func (c *Cart) Dirty() bool {
	return c.dirty
}

func (c *Cart) index(productID string) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
