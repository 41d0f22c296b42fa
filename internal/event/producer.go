package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	pkgkafka "github.com/knightempire/e-commerce-frontend/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicWishlistUpdated = "storefront.wishlist.updated"
	TopicOrderPlaced     = "storefront.order.placed"
)

// Aggregate types.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeOrder    = "order"
)

// SourceStorefront identifies events emitted by this service.
const SourceStorefront = "storefront-service"

// Publisher sends an event to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

type discard struct{}

func (discard) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// Discard drops every event; it is used when publishing is disabled.
var Discard Publisher = discard{}

// CartUpdatedData is the payload of storefront.cart.updated.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Operation string         `json:"operation"`
	ProductID string         `json:"product_id,omitempty"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     string         `json:"total"`
}

// CartItemData is one cart line inside cart events.
type CartItemData struct {
	ProductID        string            `json:"product_id"`
	Title            string            `json:"title"`
	Price            float64           `json:"extracted_price"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selected_variants,omitempty"`
}

// WishlistUpdatedData is the payload of storefront.wishlist.updated.
type WishlistUpdatedData struct {
	SessionID  string   `json:"session_id"`
	Operation  string   `json:"operation"`
	ProductID  string   `json:"product_id,omitempty"`
	ProductIDs []string `json:"product_ids"`
}

// OrderPlacedData is the payload of storefront.order.placed.
type OrderPlacedData struct {
	SessionID     string   `json:"session_id"`
	OrderNumber   string   `json:"order_number"`
	IsCartOrder   bool     `json:"is_cart_order"`
	PaymentMethod string   `json:"payment_method"`
	ProductIDs    []string `json:"product_ids"`
	ItemCount     int      `json:"item_count"`
	Total         string   `json:"total"`
}

// Producer publishes storefront domain events.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishCartUpdated publishes the cart as it stands after operation.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID, operation, productID string, state *domain.State) error {
	items := make([]CartItemData, len(state.CartItems))
	for i, item := range state.CartItems {
		items[i] = CartItemData{
			ProductID:        item.ProductID,
			Title:            item.Title,
			Price:            item.ExtractedPrice,
			Quantity:         item.Quantity,
			SelectedVariants: item.SelectedVariants,
		}
	}

	data := CartUpdatedData{
		SessionID: sessionID,
		Operation: operation,
		ProductID: productID,
		Items:     items,
		ItemCount: state.CartCount(),
		Total:     state.CartTotal().String(),
	}

	if err := p.publish(ctx, TopicCartUpdated, sessionID, AggregateTypeCart, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", sessionID),
		slog.Int("item_count", data.ItemCount),
	)
	return nil
}

// PublishWishlistUpdated publishes the wishlist's product ids after operation.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, sessionID, operation, productID string, state *domain.State) error {
	ids := make([]string, len(state.WishlistItems))
	for i, item := range state.WishlistItems {
		ids[i] = item.ProductID
	}

	data := WishlistUpdatedData{
		SessionID:  sessionID,
		Operation:  operation,
		ProductID:  productID,
		ProductIDs: ids,
	}

	if err := p.publish(ctx, TopicWishlistUpdated, sessionID, AggregateTypeWishlist, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("session_id", sessionID),
		slog.Int("wishlist_size", len(ids)),
	)
	return nil
}

// PublishOrderPlaced publishes a submitted order.
func (p *Producer) PublishOrderPlaced(ctx context.Context, data OrderPlacedData) error {
	if err := p.publish(ctx, TopicOrderPlaced, data.SessionID, AggregateTypeOrder, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("session_id", data.SessionID),
		slog.String("order_number", data.OrderNumber),
	)
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, sessionID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, sessionID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}
