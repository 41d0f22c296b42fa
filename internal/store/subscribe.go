package store

import (
	"context"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
)

// Operation names the mutation behind a Change.
type Operation string

const (
	OpAddToCart          Operation = "add_to_cart"
	OpRemoveFromCart     Operation = "remove_from_cart"
	OpUpdateQuantity     Operation = "update_quantity"
	OpClearCart          Operation = "clear_cart"
	OpAddToWishlist      Operation = "add_to_wishlist"
	OpRemoveFromWishlist Operation = "remove_from_wishlist"
	OpMoveToCart         Operation = "move_to_cart"
)

// Change describes one applied mutation. Cart and Wishlist tell which
// collections it touched. State is the snapshot taken right after it; every
// listener sees the same value and must treat it as read-only.
type Change struct {
	Op        Operation
	ProductID string
	Cart      bool
	Wishlist  bool
	State     *domain.State
}

// Listener receives changes. It runs on the mutating goroutine after the
// store lock is released, so it may call back into the store.
type Listener func(ctx context.Context, change Change)

// Subscribe registers l and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(ctx context.Context, change Change) {
	s.listenersMu.RLock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.listenersMu.RUnlock()

	for _, l := range ls {
		l(ctx, change)
	}
}
