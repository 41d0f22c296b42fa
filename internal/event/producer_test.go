package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	pkgkafka "github.com/knightempire/e-commerce-frontend/pkg/kafka"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, evt *pkgkafka.Event) error {
	args := m.Called(ctx, topic, evt)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testState() *domain.State {
	s := domain.NewState()
	s.CartItems = append(s.CartItems, domain.CartLineItem{
		Product:  domain.Product{ProductID: "p1", Title: "Lamp", ExtractedPrice: 10.25},
		Quantity: 2,
	})
	s.WishlistItems = append(s.WishlistItems,
		domain.WishlistItem{Product: domain.Product{ProductID: "w1"}},
		domain.WishlistItem{Product: domain.Product{ProductID: "w2"}},
	)
	return s
}

func TestPublishCartUpdated(t *testing.T) {
	pub := new(mockPublisher)
	var captured *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicCartUpdated, mock.AnythingOfType("*kafka.Event")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	p := NewProducer(pub, newTestLogger())
	require.NoError(t, p.PublishCartUpdated(context.Background(), "sess-1", "add_to_cart", "p1", testState()))

	pub.AssertExpectations(t)
	require.NotNil(t, captured)
	assert.Equal(t, "sess-1", captured.AggregateID)
	assert.Equal(t, AggregateTypeCart, captured.AggregateType)
	assert.Equal(t, SourceStorefront, captured.Source)

	var data CartUpdatedData
	require.NoError(t, json.Unmarshal(captured.Data, &data))
	assert.Equal(t, 2, data.ItemCount)
	assert.Equal(t, "20.5", data.Total)
	assert.Equal(t, "add_to_cart", data.Operation)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "p1", data.Items[0].ProductID)
}

func TestPublishWishlistUpdated(t *testing.T) {
	pub := new(mockPublisher)
	var captured *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicWishlistUpdated, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)

	p := NewProducer(pub, newTestLogger())
	require.NoError(t, p.PublishWishlistUpdated(context.Background(), "sess-1", "add_to_wishlist", "w2", testState()))

	var data WishlistUpdatedData
	require.NoError(t, json.Unmarshal(captured.Data, &data))
	assert.Equal(t, []string{"w1", "w2"}, data.ProductIDs)
}

func TestPublishOrderPlaced_Error(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, TopicOrderPlaced, mock.Anything).Return(errors.New("broker down"))

	p := NewProducer(pub, newTestLogger())
	err := p.PublishOrderPlaced(context.Background(), OrderPlacedData{SessionID: "s", OrderNumber: "ORD-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Contains(t, err.Error(), TopicOrderPlaced)
}

func TestDiscard(t *testing.T) {
	p := NewProducer(Discard, newTestLogger())
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), OrderPlacedData{SessionID: "s"}))
}
