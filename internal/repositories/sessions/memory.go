package sessions

import (
	"context"
	"sort"
	"sync"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
)

type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*arena.Session
}

// NewMemoryRepository creates an in-memory session archive
func NewMemoryRepository() Repository {
	return &memoryRepository{sessions: make(map[string]*arena.Session)}
}

var _ Repository = (*memoryRepository)(nil)

// Save upserts a session record
func (r *memoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *input.Session
	r.sessions[cp.ID] = &cp
	return &SaveOutput{Session: input.Session}, nil
}

// Get retrieves a session by ID
func (r *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[input.SessionID]
	if !ok {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}
	cp := *session
	return &GetOutput{Session: &cp}, nil
}

// List returns sessions newest first
func (r *memoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*arena.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		cp := *session
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if input.Limit > 0 && len(out) > input.Limit {
		out = out[:input.Limit]
	}
	return &ListOutput{Sessions: out}, nil
}
