package http

import (
	"log/slog"
	"net/http"

	"github.com/knightempire/e-commerce-frontend/internal/checkout"
	"github.com/knightempire/e-commerce-frontend/internal/pricing"
	"github.com/knightempire/e-commerce-frontend/internal/service"
	"github.com/knightempire/e-commerce-frontend/pkg/httputil"
	"github.com/knightempire/e-commerce-frontend/pkg/validator"
)

// CheckoutHandler handles promo validation and order placement.
type CheckoutHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.StorefrontService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// ValidatePromoRequest is the JSON request body for checking a promo code.
type ValidatePromoRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

type promoResponse struct {
	Code        string           `json:"code"`
	Discount    pricing.Discount `json:"discount"`
	Description string           `json:"description"`
}

// ValidatePromo handles POST /api/v1/promo/validate
func (h *CheckoutHandler) ValidatePromo(w http.ResponseWriter, r *http.Request) {
	var req ValidatePromoRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	d, err := h.service.ValidatePromo(req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, promoResponse{Code: req.Code, Discount: d, Description: d.String()})
}

// Checkout handles POST /api/v1/checkout. The bearer token is forwarded to
// the order API.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	conf, err := h.service.Checkout(r.Context(), sessionIDFromContext(r.Context()), bearerToken(r), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, conf)
}
