// Package checkout assembles orders from the cart at the end of the purchase
// flow. Payment capture is mocked; the order record is what the confirmation
// page and the customer dashboard render.
package checkout

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"meenora.in/store/internal/store/cart"
)

// ErrEmptyCart indicates checkout was attempted with no line items.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Order is a completed (mock-paid) purchase.
type Order struct {
	ID       string
	UserID   string
	Lines    []cart.Line
	Total    float64
	PlacedAt time.Time
}

// Service creates orders and keeps a per-customer history for the dashboard.
// History lives in process memory only; the backing API owns nothing here.
type Service struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *rand.Rand
	orders  map[string][]Order
}

// NewService constructs a Service. A nil clock defaults to time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		now:     now,
		entropy: rand.New(rand.NewSource(now().UnixNano())),
		orders:  make(map[string][]Order),
	}
}

// Place turns the cart into an order and records it. The caller clears the
// cart afterwards; Place itself never mutates it.
func (s *Service) Place(userID string, c *cart.Cart) (*Order, error) {
	if c == nil || c.Empty() {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	order := Order{
		ID:       ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		UserID:   userID,
		Lines:    c.Lines(),
		Total:    c.Total(),
		PlacedAt: now,
	}
	s.orders[userID] = append(s.orders[userID], order)
	return &order, nil
}

// History returns the customer's orders, newest first.
func (s *Service) History(userID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.orders[userID]
	out := make([]Order, len(stored))
	for i, order := range stored {
		out[len(stored)-1-i] = order
	}
	return out
}
