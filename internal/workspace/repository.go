package workspace

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrStateNotFound is returned when no saved state has the requested name.
var ErrStateNotFound = errors.New("saved state not found")

// SavedState is one persisted workspace snapshot.
type SavedState struct {
	Name      string
	Document  []byte // JSON-encoded scene.StateDocument
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StateRepository persists saved states by name.
type StateRepository interface {
	// Save inserts the state or replaces the one with the same name.
	Save(ctx context.Context, state *SavedState) error
	// Find returns ErrStateNotFound when name is unknown.
	Find(ctx context.Context, name string) (*SavedState, error)
	// List returns every state, most recently updated first.
	List(ctx context.Context) ([]*SavedState, error)
	// Delete returns ErrStateNotFound when name is unknown.
	Delete(ctx context.Context, name string) error
}

// MemoryRepository keeps saved states in memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	states map[string]SavedState
}

var _ StateRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{states: make(map[string]SavedState)}
}

func (r *MemoryRepository) Save(_ context.Context, state *SavedState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *state
	stored.Document = append([]byte(nil), state.Document...)
	if prev, ok := r.states[state.Name]; ok {
		stored.CreatedAt = prev.CreatedAt
	}
	r.states[state.Name] = stored
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, name string) (*SavedState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[name]
	if !ok {
		return nil, ErrStateNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*SavedState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*SavedState, 0, len(r.states))
	for _, s := range r.states {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[name]; !ok {
		return ErrStateNotFound
	}
	delete(r.states, name)
	return nil
}
