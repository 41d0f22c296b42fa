package repository

import (
	"context"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
)

// StateRepository persists one cart-and-wishlist record per shopper session.
type StateRepository interface {
	// Load returns the stored state, or an error wrapping
	// apperrors.ErrNotFound when the session has none.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Save overwrites the session's record.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Delete removes the session's record. Deleting a missing record is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// Key is the storage key of a session's record under namespace.
func Key(namespace, sessionID string) string {
	return namespace + ":" + sessionID
}
