// Package store holds one shopper's cart and wishlist and keeps them in
// step with a durable mirror.
//
// Mutations never fail for domain reasons: removing an absent product or
// updating its quantity is a no-op. The only error a mutation returns is a
// failed write to Storage, in which case the in-memory state has still been
// updated and the next successful save brings the mirror back in line.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// Storage is the durable mirror of a Store. Load returns an error wrapping
// apperrors.ErrNotFound when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
}

// Store is a mutex-guarded cart and wishlist. The zero value is not usable;
// construct with Open.
type Store struct {
	mu      sync.Mutex
	state   *domain.State
	storage Storage
	logger  *slog.Logger

	listenersMu sync.RWMutex
	listeners   map[uint64]Listener
	nextID      uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open builds a Store and rehydrates it from storage. Missing or unreadable
// state starts the store empty; it is never an error.
func Open(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:   storage,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		listeners: make(map[uint64]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := storage.Load(ctx)
	switch {
	case err == nil && state != nil:
		s.state = state
	case err == nil, errors.Is(err, apperrors.ErrNotFound):
		s.state = domain.NewState()
	default:
		s.logger.WarnContext(ctx, "discarding unreadable persisted state",
			slog.String("error", err.Error()),
		)
		s.state = domain.NewState()
	}

	return s
}

// AddToCart adds quantity units of product. An existing line grows by
// quantity and keeps its variants; a new line takes variants, or the
// defaults when none are given. Quantities below one are treated as one.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int, variants domain.Variants) error {
	if product.ProductID == "" {
		return apperrors.InvalidInput("product_id is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	return s.mutate(ctx, Change{Op: OpAddToCart, ProductID: product.ProductID, Cart: true}, func(st *domain.State) bool {
		addLine(st, product, quantity, variants)
		return true
	})
}

// RemoveFromCart deletes the line for productID if there is one.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, Change{Op: OpRemoveFromCart, ProductID: productID, Cart: true}, func(st *domain.State) bool {
		return removeLine(st, productID)
	})
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or less
// removes the line; an absent product is left alone.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.mutate(ctx, Change{Op: OpRemoveFromCart, ProductID: productID, Cart: true}, func(st *domain.State) bool {
			return removeLine(st, productID)
		})
	}

	return s.mutate(ctx, Change{Op: OpUpdateQuantity, ProductID: productID, Cart: true}, func(st *domain.State) bool {
		i := st.CartIndex(productID)
		if i < 0 || st.CartItems[i].Quantity == quantity {
			return false
		}
		st.CartItems[i].Quantity = quantity
		return true
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, Change{Op: OpClearCart, Cart: true}, func(st *domain.State) bool {
		if len(st.CartItems) == 0 {
			return false
		}
		st.CartItems = []domain.CartLineItem{}
		return true
	})
}

// AddToWishlist saves product for later. A product already saved is ignored.
func (s *Store) AddToWishlist(ctx context.Context, product domain.Product) error {
	if product.ProductID == "" {
		return apperrors.InvalidInput("product_id is required")
	}

	return s.mutate(ctx, Change{Op: OpAddToWishlist, ProductID: product.ProductID, Wishlist: true}, func(st *domain.State) bool {
		if st.WishlistIndex(product.ProductID) >= 0 {
			return false
		}
		st.WishlistItems = append(st.WishlistItems, domain.WishlistItem{Product: product.Clone()})
		return true
	})
}

// RemoveFromWishlist deletes the wishlist entry for productID if present.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	return s.mutate(ctx, Change{Op: OpRemoveFromWishlist, ProductID: productID, Wishlist: true}, func(st *domain.State) bool {
		return removeWish(st, productID)
	})
}

// MoveToCart adds one unit of a saved product to the cart and drops it from
// the wishlist, as a single change. Products not on the wishlist are ignored.
func (s *Store) MoveToCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, Change{Op: OpMoveToCart, ProductID: productID, Cart: true, Wishlist: true}, func(st *domain.State) bool {
		i := st.WishlistIndex(productID)
		if i < 0 {
			return false
		}
		addLine(st, st.WishlistItems[i].Product, 1, nil)
		return removeWish(st, productID)
	})
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().CartItems
}

// Wishlist returns a copy of the wishlist in insertion order.
func (s *Store) Wishlist() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().WishlistItems
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// CartTotal is the sum of price times quantity; zero for an empty cart.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CartTotal()
}

// CartCount is the number of units in the cart.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CartCount()
}

// IsInWishlist reports whether productID is saved.
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.WishlistIndex(productID) >= 0
}

// mutate applies fn under the lock. When fn reports a change the new state is
// saved before the lock is released, so writes reach storage in mutation
// order, and listeners are then notified with a snapshot.
func (s *Store) mutate(ctx context.Context, change Change, fn func(*domain.State) bool) error {
	s.mu.Lock()
	if !fn(s.state) {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.state.Clone()
	saveErr := s.storage.Save(ctx, snapshot)
	s.mu.Unlock()

	if saveErr != nil {
		s.logger.ErrorContext(ctx, "failed to persist state",
			slog.String("op", string(change.Op)),
			slog.String("product_id", change.ProductID),
			slog.String("error", saveErr.Error()),
		)
	}

	change.State = snapshot
	s.notify(ctx, change)

	if saveErr != nil {
		return fmt.Errorf("persist state: %w", saveErr)
	}
	return nil
}

func addLine(st *domain.State, product domain.Product, quantity int, variants domain.Variants) {
	if i := st.CartIndex(product.ProductID); i >= 0 {
		st.CartItems[i].Quantity += quantity
		return
	}

	if len(variants) == 0 {
		variants = domain.DefaultVariants()
	}
	line := domain.CartLineItem{
		Product:          product,
		Quantity:         quantity,
		SelectedVariants: variants,
	}
	st.CartItems = append(st.CartItems, line.Clone())
}

func removeLine(st *domain.State, productID string) bool {
	i := st.CartIndex(productID)
	if i < 0 {
		return false
	}
	st.CartItems = append(st.CartItems[:i], st.CartItems[i+1:]...)
	return true
}

func removeWish(st *domain.State, productID string) bool {
	i := st.WishlistIndex(productID)
	if i < 0 {
		return false
	}
	st.WishlistItems = append(st.WishlistItems[:i], st.WishlistItems[i+1:]...)
	return true
}
