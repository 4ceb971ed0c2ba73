// Package events provides durable storage for per-session game event
// streams. Sequence numbers are assigned upstream by the sequencer, which
// is the single writer per session; stores only persist and read.
package events

import (
	"context"

	"github.com/arenaforge/arena-api/internal/entities/arena"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=eventsmock github.com/arenaforge/arena-api/internal/repositories/events Repository

// AppendInput contains parameters for appending one event
type AppendInput struct {
	Event *arena.GameEvent
}

// AppendOutput contains the result of an append
type AppendOutput struct {
	Seq int64
}

// ReadFromInput reads events with Seq >= FromSeq in order, up to Limit.
// A zero Limit means no cap.
type ReadFromInput struct {
	SessionID string
	FromSeq   int64
	Limit     int
}

// ReadFromOutput contains the events read
type ReadFromOutput struct {
	Events []*arena.GameEvent
}

// TailInput reads the most recent N events in order
type TailInput struct {
	SessionID string
	N         int
}

// TailOutput contains the tail events
type TailOutput struct {
	Events []*arena.GameEvent
}

// LastSeqInput identifies the stream to inspect
type LastSeqInput struct {
	SessionID string
}

// LastSeqOutput carries the highest assigned sequence, zero for an empty
// stream.
type LastSeqOutput struct {
	Seq int64
}

// Repository defines the interface for event stream storage
type Repository interface {
	// Append persists one event. The event's Seq must be exactly one
	// past the stream's current last sequence.
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// ReadFrom returns events in sequence order starting at FromSeq
	ReadFrom(ctx context.Context, input ReadFromInput) (*ReadFromOutput, error)

	// Tail returns the last N events in sequence order
	Tail(ctx context.Context, input TailInput) (*TailOutput, error)

	// LastSeq returns the highest sequence in the stream
	LastSeq(ctx context.Context, input LastSeqInput) (*LastSeqOutput, error)
}
