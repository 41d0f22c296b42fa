package bolt

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// StateRepository implements repository.StateRepository on a bbolt file.
// The namespace is the bucket; session IDs are the keys.
type StateRepository struct {
	db     *bolt.DB
	bucket []byte
}

// NewStateRepository creates the namespace bucket if needed.
func NewStateRepository(db *bolt.DB, namespace string) (*StateRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(namespace))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %q: %w", namespace, err)
	}

	return &StateRepository{db: db, bucket: []byte(namespace)}, nil
}

// Load reads the session's record.
func (r *StateRepository) Load(_ context.Context, sessionID string) (*domain.State, error) {
	var data []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		// Values are only valid inside the transaction.
		if v := tx.Bucket(r.bucket).Get([]byte(sessionID)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt get state: %w", err)
	}
	if data == nil {
		return nil, apperrors.NotFound("state", sessionID)
	}

	return domain.UnmarshalState(data)
}

// Save writes the session's record.
func (r *StateRepository) Save(_ context.Context, sessionID string, state *domain.State) error {
	data, err := domain.MarshalState(state)
	if err != nil {
		return err
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(sessionID), data)
	})
	if err != nil {
		return fmt.Errorf("bolt put state: %w", err)
	}
	return nil
}

// Delete removes the session's record.
func (r *StateRepository) Delete(_ context.Context, sessionID string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Delete([]byte(sessionID))
	})
	if err != nil {
		return fmt.Errorf("bolt delete state: %w", err)
	}
	return nil
}

// Ping checks that the database file is open and readable.
func (r *StateRepository) Ping(_ context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(r.bucket) == nil {
			return fmt.Errorf("bucket %q missing", r.bucket)
		}
		return nil
	})
}
