package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knightempire/e-commerce-frontend/internal/checkout"
	"github.com/knightempire/e-commerce-frontend/internal/domain"
	"github.com/knightempire/e-commerce-frontend/internal/event"
	"github.com/knightempire/e-commerce-frontend/internal/pricing"
	"github.com/knightempire/e-commerce-frontend/internal/promo"
	"github.com/knightempire/e-commerce-frontend/internal/store"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// AddToCartInput holds the parameters for adding a product to the cart.
type AddToCartInput struct {
	Product          domain.Product  `json:"product"`
	Quantity         int             `json:"quantity" validate:"gte=0,lte=100"`
	SelectedVariants domain.Variants `json:"selected_variants"`
}

// UpdateQuantityInput holds the new quantity of a cart line. Zero or less
// removes the line.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"lte=100"`
}

// AddToWishlistInput holds the product to save.
type AddToWishlistInput struct {
	Product domain.Product `json:"product"`
}

// QuoteInput holds the checkout options to price the cart under.
type QuoteInput struct {
	PromoCode       string `json:"promo_code"`
	GiftWrap        bool   `json:"gift_wrap"`
	ExpressShipping bool   `json:"express_shipping"`
}

// CartView is the cart as returned to clients.
type CartView struct {
	Items     []domain.CartLineItem `json:"items"`
	ItemCount int                   `json:"item_count"`
	Total     decimal.Decimal       `json:"total"`
}

// Quote is a priced cart.
type Quote struct {
	Items     []domain.CartLineItem `json:"items"`
	Discount  *pricing.Discount     `json:"applied_discount,omitempty"`
	Breakdown pricing.Breakdown     `json:"breakdown"`
	Display   pricing.Display       `json:"display"`
}

// StorefrontService implements the cart, wishlist, pricing and checkout
// operations for shopper sessions.
type StorefrontService struct {
	sessions *Sessions
	engine   *pricing.Engine
	promos   *promo.Catalog
	orders   checkout.OrderSubmitter
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewStorefrontService creates a new storefront service.
func NewStorefrontService(
	sessions *Sessions,
	engine *pricing.Engine,
	promos *promo.Catalog,
	orders checkout.OrderSubmitter,
	producer *event.Producer,
	logger *slog.Logger,
) *StorefrontService {
	return &StorefrontService{
		sessions: sessions,
		engine:   engine,
		promos:   promos,
		orders:   orders,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// GetCart returns the session's cart.
func (s *StorefrontService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cartView(st), nil
}

// AddToCart adds a product to the session's cart.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, input AddToCartInput) (*CartView, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.AddToCart(ctx, input.Product, input.Quantity, input.SelectedVariants); err != nil {
		if err = s.mutationError(ctx, sessionID, err); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", input.Product.ProductID),
		slog.Int("quantity", input.Quantity),
	)
	return cartView(st), nil
}

// UpdateQuantity sets a cart line's quantity.
func (s *StorefrontService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.UpdateQuantity(ctx, productID, quantity); err != nil {
		if err = s.mutationError(ctx, sessionID, err); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)
	return cartView(st), nil
}

// RemoveFromCart removes a product from the cart.
func (s *StorefrontService) RemoveFromCart(ctx context.Context, sessionID, productID string) (*CartView, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.RemoveFromCart(ctx, productID); err != nil {
		if err = s.mutationError(ctx, sessionID, err); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)
	return cartView(st), nil
}

// ClearCart empties the cart.
func (s *StorefrontService) ClearCart(ctx context.Context, sessionID string) error {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := st.ClearCart(ctx); err != nil {
		return s.mutationError(ctx, sessionID, err)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", sessionID))
	return nil
}

// QuoteCart prices the session's cart under input.
func (s *StorefrontService) QuoteCart(ctx context.Context, sessionID string, input QuoteInput) (*Quote, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	discount, err := s.resolvePromo(input.PromoCode)
	if err != nil {
		return nil, err
	}

	items := st.Items()
	b := s.engine.Calculate(items, pricing.Options{
		Discount:        discount,
		GiftWrap:        input.GiftWrap,
		ExpressShipping: input.ExpressShipping,
	})

	return &Quote{
		Items:     items,
		Discount:  discount,
		Breakdown: b,
		Display:   b.Display(),
	}, nil
}

// ValidatePromo resolves a promo code.
func (s *StorefrontService) ValidatePromo(code string) (pricing.Discount, error) {
	return s.promos.Resolve(code)
}

// GetWishlist returns the session's wishlist in the order items were saved.
func (s *StorefrontService) GetWishlist(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return st.Wishlist(), nil
}

// AddToWishlist saves a product for later.
func (s *StorefrontService) AddToWishlist(ctx context.Context, sessionID string, product domain.Product) ([]domain.WishlistItem, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.AddToWishlist(ctx, product); err != nil {
		if err = s.mutationError(ctx, sessionID, err); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("session_id", sessionID),
		slog.String("product_id", product.ProductID),
	)
	return st.Wishlist(), nil
}

// RemoveFromWishlist drops a saved product.
func (s *StorefrontService) RemoveFromWishlist(ctx context.Context, sessionID, productID string) ([]domain.WishlistItem, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.RemoveFromWishlist(ctx, productID); err != nil {
		if err = s.mutationError(ctx, sessionID, err); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)
	return st.Wishlist(), nil
}

// IsInWishlist reports whether a product is saved.
func (s *StorefrontService) IsInWishlist(ctx context.Context, sessionID, productID string) (bool, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return st.IsInWishlist(productID), nil
}

// MoveToCart moves a saved product into the cart.
func (s *StorefrontService) MoveToCart(ctx context.Context, sessionID, productID string) (*CartView, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.MoveToCart(ctx, productID); err != nil {
		if err = s.mutationError(ctx, sessionID, err); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "wishlist item moved to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)
	return cartView(st), nil
}

func (s *StorefrontService) open(ctx context.Context, sessionID string) (*store.Store, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("session id is required")
	}
	return s.sessions.Get(ctx, sessionID), nil
}

func (s *StorefrontService) resolvePromo(code string) (*pricing.Discount, error) {
	if code == "" {
		return nil, nil
	}
	d, err := s.promos.Resolve(code)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// mutationError passes domain errors through and turns a storage failure
// into a 503. The in-memory change has been applied either way.
func (s *StorefrontService) mutationError(ctx context.Context, sessionID string, err error) error {
	if apperrors.HTTPStatus(err) < http.StatusInternalServerError {
		return err
	}

	storePersistFailuresTotal.Inc()
	s.logger.ErrorContext(ctx, "change applied but not persisted",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
	)
	return &apperrors.AppError{
		Code:    "STORAGE_UNAVAILABLE",
		Message: "change applied but could not be saved",
		Status:  http.StatusServiceUnavailable,
		Err:     fmt.Errorf("%w: %v", apperrors.ErrServiceUnavail, err),
	}
}

func cartView(st *store.Store) *CartView {
	snap := st.Snapshot()
	return &CartView{
		Items:     snap.CartItems,
		ItemCount: snap.CartCount(),
		Total:     snap.CartTotal(),
	}
}
