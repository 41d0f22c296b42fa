package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
	"github.com/knightempire/e-commerce-frontend/pkg/httpclient"
)

// OrderSubmitter sends an order to the order API and returns its number.
type OrderSubmitter interface {
	Submit(ctx context.Context, token string, payload *Payload) (string, error)
}

// OrderClient submits orders over HTTP through a circuit breaker.
type OrderClient struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderClient creates a client for the order API rooted at baseURL.
func NewOrderClient(client *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *OrderClient {
	return &OrderClient{
		http:    client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

type createOrderResponse struct {
	Order *struct {
		OrderNumber string `json:"orderNumber"`
	} `json:"order"`
}

// Submit posts payload to /user/createorder on behalf of the bearer token.
// When the API accepts the order without numbering it, a number of the form
// ORD-<unix millis> is generated.
func (c *OrderClient) Submit(ctx context.Context, token string, payload *Payload) (string, error) {
	if token == "" {
		return "", apperrors.Unauthorized("no auth token found")
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)

	var resp createOrderResponse
	err := c.http.PostJSON(ctx, c.baseURL+"/user/createorder", headers, payload, &resp)
	if err != nil {
		var appErr *apperrors.AppError
		switch {
		case errors.Is(err, httpclient.ErrCircuitOpen):
			return "", apperrors.ServiceUnavailable("order service is temporarily unavailable")
		case errors.As(err, &appErr):
			return "", err
		default:
			c.logger.ErrorContext(ctx, "order submission failed", slog.String("error", err.Error()))
			return "", &apperrors.AppError{
				Code:    "SERVICE_UNAVAILABLE",
				Message: "failed to create order",
				Status:  http.StatusServiceUnavailable,
				Err:     fmt.Errorf("%w: %v", apperrors.ErrServiceUnavail, err),
			}
		}
	}

	if resp.Order != nil && resp.Order.OrderNumber != "" {
		return resp.Order.OrderNumber, nil
	}
	return fmt.Sprintf("ORD-%d", c.now().UnixMilli()), nil
}
