package service

import (
	"context"
	"log/slog"

	"github.com/knightempire/e-commerce-frontend/internal/checkout"
	"github.com/knightempire/e-commerce-frontend/internal/domain"
	"github.com/knightempire/e-commerce-frontend/internal/event"
	"github.com/knightempire/e-commerce-frontend/internal/pricing"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// Checkout prices the order, runs the payment and submits it to the order
// API on behalf of token. A placed cart order clears the session's cart.
func (s *StorefrontService) Checkout(ctx context.Context, sessionID, token string, req *checkout.Request) (*checkout.Confirmation, error) {
	st, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !req.Order.IsCartOrder && req.Order.Product == nil {
		checkoutsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, apperrors.InvalidInput("product is required for a single-item order")
	}

	items := req.Items(st.Items())
	if len(items) == 0 {
		checkoutsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, apperrors.InvalidInput("cart is empty")
	}

	discount, err := s.resolvePromo(req.Order.PromoCode)
	if err != nil {
		checkoutsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, err
	}

	breakdown := s.engine.Calculate(items, pricing.Options{
		Discount:        discount,
		GiftWrap:        req.Order.GiftWrap,
		ExpressShipping: req.Order.ExpressShipping,
	})

	switch checkout.SimulateTransaction(req.Payment) {
	case checkout.TransactionDeclined:
		checkoutsTotal.WithLabelValues(outcomeDeclined).Inc()
		s.logger.WarnContext(ctx, "payment declined", slog.String("session_id", sessionID))
		return nil, apperrors.PaymentFailed("Transaction declined. Please check your payment information and try again.")
	case checkout.TransactionGatewayError:
		checkoutsTotal.WithLabelValues(outcomeGatewayError).Inc()
		s.logger.WarnContext(ctx, "payment gateway error", slog.String("session_id", sessionID))
		return nil, apperrors.ServiceUnavailable("Payment gateway errors. Please try again later.")
	}

	payload := checkout.BuildPayload(req, items, breakdown)
	orderNumber, err := s.orders.Submit(ctx, token, payload)
	if err != nil {
		checkoutsTotal.WithLabelValues(outcomeSubmitFailed).Inc()
		return nil, err
	}

	if req.Order.IsCartOrder {
		if err := st.ClearCart(ctx); err != nil {
			// The order is placed; a stale cart is not worth failing it over.
			storePersistFailuresTotal.Inc()
			s.logger.ErrorContext(ctx, "failed to persist cleared cart",
				slog.String("session_id", sessionID),
				slog.String("order_number", orderNumber),
				slog.String("error", err.Error()),
			)
		}
	}

	checkoutsTotal.WithLabelValues(outcomePlaced).Inc()
	total, _ := breakdown.Total.Float64()
	orderTotalAmount.Observe(total)

	if err := s.producer.PublishOrderPlaced(context.WithoutCancel(ctx), orderPlacedData(sessionID, orderNumber, req, items, breakdown)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_number", orderNumber),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("session_id", sessionID),
		slog.String("order_number", orderNumber),
		slog.String("total", breakdown.Total.StringFixed(2)),
	)

	return checkout.NewConfirmation(orderNumber, s.now(), payload, breakdown), nil
}

func orderPlacedData(sessionID, orderNumber string, req *checkout.Request, items []domain.CartLineItem, b pricing.Breakdown) event.OrderPlacedData {
	ids := make([]string, len(items))
	count := 0
	for i, item := range items {
		ids[i] = item.ProductID
		count += item.Quantity
	}

	return event.OrderPlacedData{
		SessionID:     sessionID,
		OrderNumber:   orderNumber,
		IsCartOrder:   req.Order.IsCartOrder,
		PaymentMethod: string(req.Payment.Method),
		ProductIDs:    ids,
		ItemCount:     count,
		Total:         b.Total.String(),
	}
}
