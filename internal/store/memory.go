// apps/go-solver/internal/store/memory.go
//
// In-memory storage for solver sessions driven over HTTP.
//
// Characteristics:
//   - Stores Session values keyed by ID; callers always get a copy.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing session IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var ErrNotFound = errors.New("session not found")

// Session is one solver run in progress. Rounds are immutable values, so
// copying a Session never shares mutable state.
type Session struct {
	ID        string
	Config    solver.Config
	Round     solver.Round
	History   []solver.Round // earlier rounds, oldest first
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (Session, error)

	// Delete removes a session; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]Session)}
}

func (m *memory) Save(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return Session{}, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
