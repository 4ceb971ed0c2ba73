// Package sessions provides the session archive: the record of every
// session that ran, for listing and replay lookup.
package sessions

import (
	"context"

	"github.com/arenaforge/arena-api/internal/entities/arena"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionsmock github.com/arenaforge/arena-api/internal/repositories/sessions Repository

// SaveInput upserts a session record
type SaveInput struct {
	Session *arena.Session
}

// SaveOutput contains the result of a save
type SaveOutput struct {
	Session *arena.Session
}

// GetInput identifies the session to fetch
type GetInput struct {
	SessionID string
}

// GetOutput contains the fetched session
type GetOutput struct {
	Session *arena.Session
}

// ListInput pages the archive, newest first. A zero Limit means no cap.
type ListInput struct {
	Limit int
}

// ListOutput contains the listed sessions
type ListOutput struct {
	Sessions []*arena.Session
}

// Repository defines the interface for session archive storage
type Repository interface {
	// Save upserts a session record
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns sessions newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
