package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	"github.com/knightempire/e-commerce-frontend/internal/repository"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// StateRepository implements repository.StateRepository on Redis string
// keys. Every save refreshes the key's TTL.
type StateRepository struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewStateRepository creates a Redis-backed state repository.
func NewStateRepository(client *redis.Client, namespace string, ttl time.Duration) *StateRepository {
	return &StateRepository{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

// Load reads the session's record.
func (r *StateRepository) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	data, err := r.client.Get(ctx, repository.Key(r.namespace, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("state", sessionID)
		}
		return nil, fmt.Errorf("redis get state: %w", err)
	}

	return domain.UnmarshalState(data)
}

// Save writes the session's record with the configured TTL.
func (r *StateRepository) Save(ctx context.Context, sessionID string, state *domain.State) error {
	data, err := domain.MarshalState(state)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, repository.Key(r.namespace, sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	return nil
}

// Delete removes the session's record.
func (r *StateRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, repository.Key(r.namespace, sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del state: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *StateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
