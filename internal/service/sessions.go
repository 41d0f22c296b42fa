package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	"github.com/knightempire/e-commerce-frontend/internal/event"
	"github.com/knightempire/e-commerce-frontend/internal/repository"
	"github.com/knightempire/e-commerce-frontend/internal/store"
)

// sessionStorage binds a StateRepository to one session so a Store can use it.
type sessionStorage struct {
	repo      repository.StateRepository
	sessionID string
}

func (s sessionStorage) Load(ctx context.Context) (*domain.State, error) {
	return s.repo.Load(ctx, s.sessionID)
}

func (s sessionStorage) Save(ctx context.Context, state *domain.State) error {
	return s.repo.Save(ctx, s.sessionID, state)
}

type session struct {
	store       *store.Store
	unsubscribe func()
	lastAccess  time.Time
}

// Sessions keeps one Store per shopper session in memory, opening it from
// the repository on first use.
type Sessions struct {
	repo     repository.StateRepository
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessions creates an empty session registry.
func NewSessions(repo repository.StateRepository, producer *event.Producer, logger *slog.Logger) *Sessions {
	return &Sessions{
		repo:     repo,
		producer: producer,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Get returns the session's Store, opening it if needed.
func (r *Sessions) Get(ctx context.Context, sessionID string) *store.Store {
	r.mu.Lock()
	if sess, ok := r.sessions[sessionID]; ok {
		sess.lastAccess = r.now()
		r.mu.Unlock()
		return sess.store
	}
	r.mu.Unlock()

	// Load outside the registry lock; a concurrent opener may win the race,
	// in which case this store is dropped unused.
	st := store.Open(ctx, sessionStorage{repo: r.repo, sessionID: sessionID},
		store.WithLogger(r.logger.With(slog.String("session_id", sessionID))),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[sessionID]; ok {
		sess.lastAccess = r.now()
		return sess.store
	}

	r.sessions[sessionID] = &session{
		store:       st,
		unsubscribe: st.Subscribe(r.listener(sessionID)),
		lastAccess:  r.now(),
	}
	sessionsActive.Set(float64(len(r.sessions)))

	return st
}

// Len reports how many sessions are held in memory.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than idle and returns how many were
// dropped. Their state stays in the repository.
func (r *Sessions) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var evicted []*session
	for id, sess := range r.sessions {
		if sess.lastAccess.Before(cutoff) {
			evicted = append(evicted, sess)
			delete(r.sessions, id)
		}
	}
	sessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	for _, sess := range evicted {
		sess.unsubscribe()
	}
	return len(evicted)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Sessions) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.logger.DebugContext(ctx, "evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}

// listener counts the change and publishes it. Publishing outlives the
// request that caused it, so cancellation is detached.
func (r *Sessions) listener(sessionID string) store.Listener {
	return func(ctx context.Context, c store.Change) {
		storeOperationsTotal.WithLabelValues(string(c.Op)).Inc()
		ctx = context.WithoutCancel(ctx)

		if c.Cart {
			if err := r.producer.PublishCartUpdated(ctx, sessionID, string(c.Op), c.ProductID, c.State); err != nil {
				r.logger.ErrorContext(ctx, "failed to publish cart.updated event",
					slog.String("session_id", sessionID),
					slog.String("error", err.Error()),
				)
			}
		}
		if c.Wishlist {
			if err := r.producer.PublishWishlistUpdated(ctx, sessionID, string(c.Op), c.ProductID, c.State); err != nil {
				r.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
					slog.String("session_id", sessionID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
