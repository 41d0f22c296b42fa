package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	"github.com/knightempire/e-commerce-frontend/internal/service"
	"github.com/knightempire/e-commerce-frontend/pkg/httputil"
	"github.com/knightempire/e-commerce-frontend/pkg/pagination"
	"github.com/knightempire/e-commerce-frontend/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.StorefrontService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// AddWishlistRequest is the JSON request body for saving a product.
type AddWishlistRequest struct {
	Product domain.Product `json:"product"`
}

type wishlistStatus struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetWishlist(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, pagination.Paginate(items, pagination.FromRequest(r)))
}

// Add handles POST /api/v1/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	items, err := h.service.AddToWishlist(r.Context(), sessionIDFromContext(r.Context()), req.Product)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, items)
}

// Contains handles GET /api/v1/wishlist/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	in, err := h.service.IsInWishlist(r.Context(), sessionIDFromContext(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, wishlistStatus{ProductID: productID, InWishlist: in})
}

// Remove handles DELETE /api/v1/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.RemoveFromWishlist(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, items)
}

// MoveToCart handles POST /api/v1/wishlist/{productId}/move
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.MoveToCart(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cart)
}
