package events

import (
	"context"
	"sync"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
)

type memoryRepository struct {
	mu      sync.RWMutex
	streams map[string][]*arena.GameEvent
}

// NewMemoryRepository creates an in-memory event store for development
// and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		streams: make(map[string][]*arena.GameEvent),
	}
}

var _ Repository = (*memoryRepository)(nil)

// Append persists one event
func (r *memoryRepository) Append(_ context.Context, input AppendInput) (*AppendOutput, error) {
	if input.Event == nil {
		return nil, errors.InvalidArgument(errEventNil)
	}
	if input.Event.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stream := r.streams[input.Event.SessionID]
	if input.Event.Seq != int64(len(stream))+1 {
		return nil, errors.FailedPreconditionf(
			"append out of order: got seq %d, expected %d", input.Event.Seq, len(stream)+1)
	}

	cp := *input.Event
	r.streams[input.Event.SessionID] = append(stream, &cp)
	return &AppendOutput{Seq: cp.Seq}, nil
}

// ReadFrom returns events in sequence order starting at FromSeq
func (r *memoryRepository) ReadFrom(_ context.Context, input ReadFromInput) (*ReadFromOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stream := r.streams[input.SessionID]
	from := input.FromSeq
	if from < 1 {
		from = 1
	}
	if from > int64(len(stream)) {
		return &ReadFromOutput{}, nil
	}

	slice := stream[from-1:]
	if input.Limit > 0 && len(slice) > input.Limit {
		slice = slice[:input.Limit]
	}
	return &ReadFromOutput{Events: copyEvents(slice)}, nil
}

// Tail returns the last N events in sequence order
func (r *memoryRepository) Tail(_ context.Context, input TailInput) (*TailOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.N <= 0 {
		return &TailOutput{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stream := r.streams[input.SessionID]
	start := len(stream) - input.N
	if start < 0 {
		start = 0
	}
	return &TailOutput{Events: copyEvents(stream[start:])}, nil
}

// LastSeq returns the highest sequence in the stream
func (r *memoryRepository) LastSeq(_ context.Context, input LastSeqInput) (*LastSeqOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return &LastSeqOutput{Seq: int64(len(r.streams[input.SessionID]))}, nil
}

func copyEvents(in []*arena.GameEvent) []*arena.GameEvent {
	out := make([]*arena.GameEvent, len(in))
	for i, ev := range in {
		cp := *ev
		out[i] = &cp
	}
	return out
}
