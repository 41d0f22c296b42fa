package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReceivesChanges(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)

	var changes []Change
	unsubscribe := s.Subscribe(func(_ context.Context, c Change) {
		changes = append(changes, c)
	})

	require.NoError(t, s.AddToCart(ctx, product("a", 1), 2, nil))
	require.NoError(t, s.RemoveFromCart(ctx, "missing"))
	require.NoError(t, s.AddToWishlist(ctx, product("w", 1)))
	require.NoError(t, s.MoveToCart(ctx, "w"))

	require.Len(t, changes, 3)
	assert.Equal(t, OpAddToCart, changes[0].Op)
	assert.True(t, changes[0].Cart)
	assert.False(t, changes[0].Wishlist)
	assert.Equal(t, 2, changes[0].State.CartCount())

	assert.Equal(t, OpAddToWishlist, changes[1].Op)
	assert.True(t, changes[1].Wishlist)

	assert.Equal(t, OpMoveToCart, changes[2].Op)
	assert.True(t, changes[2].Cart)
	assert.True(t, changes[2].Wishlist)
	assert.Empty(t, changes[2].State.WishlistItems)

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.ClearCart(ctx))
	assert.Len(t, changes, 3)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)

	var seen int
	s.Subscribe(func(_ context.Context, _ Change) {
		seen = s.CartCount()
	})

	require.NoError(t, s.AddToCart(ctx, product("a", 1), 4, nil))
	assert.Equal(t, 4, seen)
}
