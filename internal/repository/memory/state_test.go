package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

func TestStateRepository(t *testing.T) {
	repo := NewStateRepository()
	ctx := context.Background()

	_, err := repo.Load(ctx, "s")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	st := domain.NewState()
	st.WishlistItems = append(st.WishlistItems, domain.WishlistItem{Product: domain.Product{ProductID: "w", Title: "W"}})
	require.NoError(t, repo.Save(ctx, "s", st))
	assert.Equal(t, 1, repo.Len())

	// Stored bytes are independent of the caller's value.
	st.WishlistItems[0].Title = "changed"
	got, err := repo.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "W", got.WishlistItems[0].Title)

	require.NoError(t, repo.Delete(ctx, "s"))
	assert.Equal(t, 0, repo.Len())
	assert.NoError(t, repo.Ping(ctx))
}
