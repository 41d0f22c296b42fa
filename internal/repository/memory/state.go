package memory

import (
	"context"
	"sync"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// StateRepository keeps encoded records in a map. State lives only as long
// as the process; it backs local development and tests.
type StateRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewStateRepository returns an empty repository.
func NewStateRepository() *StateRepository {
	return &StateRepository{records: make(map[string][]byte)}
}

func (r *StateRepository) Load(_ context.Context, sessionID string) (*domain.State, error) {
	r.mu.RLock()
	data, ok := r.records[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("state", sessionID)
	}
	return domain.UnmarshalState(data)
}

func (r *StateRepository) Save(_ context.Context, sessionID string, state *domain.State) error {
	data, err := domain.MarshalState(state)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.records[sessionID] = data
	r.mu.Unlock()
	return nil
}

func (r *StateRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.records, sessionID)
	r.mu.Unlock()
	return nil
}

func (r *StateRepository) Ping(context.Context) error { return nil }

// Len reports how many sessions have a record.
func (r *StateRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
