// Package sequencer assigns each session's gapless event sequence,
// persists events before acknowledging them, and fans them out to live
// subscribers in order. Catch-up reads serve reconnecting consumers; when
// the backlog exceeds the catch-up limit a compressed bootstrap hands out
// only the recent tail, flagged so the consumer knows it is lossy.
package sequencer

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/pkg/clock"
	"github.com/arenaforge/arena-api/internal/repositories/events"
)

const defaultSubscriberBuffer = 256

// Config holds the sequencer dependencies
type Config struct {
	Repo  events.Repository
	Clock clock.Clock

	// CatchupLimit is the largest backlog served verbatim
	CatchupLimit int

	// BootstrapTail is the tail size of a compressed bootstrap
	BootstrapTail int

	// SubscriberBuffer caps each subscriber's channel; slow subscribers
	// past the cap are dropped. Zero means the default.
	SubscriberBuffer int
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.CatchupLimit <= 0 {
		vb.Field("CatchupLimit", "must be positive")
	}
	if c.BootstrapTail <= 0 {
		vb.Field("BootstrapTail", "must be positive")
	}
	if c.BootstrapTail > c.CatchupLimit {
		vb.Field("BootstrapTail", "must not exceed CatchupLimit")
	}
	return vb.Build()
}

// Subscription is one live consumer of a session stream
type Subscription struct {
	// Events delivers catch-up then live events in sequence order. The
	// channel closes on Unsubscribe or when the subscriber falls too far
	// behind.
	Events <-chan *arena.GameEvent

	// Compacted is true when the catch-up portion was a lossy bootstrap
	// tail rather than the full backlog.
	Compacted bool

	id        int64
	sessionID string
}

// CatchupOutput is a bulk read of a session stream
type CatchupOutput struct {
	Events    []*arena.GameEvent
	Compacted bool
}

type subscriber struct {
	ch chan *arena.GameEvent
}

// Sequencer owns sequence assignment and fanout for all sessions
type Sequencer struct {
	repo   events.Repository
	clock  clock.Clock
	limit  int
	tail   int
	buffer int

	mu      sync.Mutex
	nextSub int64
	seqs    map[string]int64
	subs    map[string]map[int64]*subscriber
}

// New creates a sequencer
func New(cfg *Config) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	buffer := cfg.SubscriberBuffer
	if buffer == 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Sequencer{
		repo:   cfg.Repo,
		clock:  cfg.Clock,
		limit:  cfg.CatchupLimit,
		tail:   cfg.BootstrapTail,
		buffer: buffer,
		seqs:   make(map[string]int64),
		subs:   make(map[string]map[int64]*subscriber),
	}, nil
}

// Emit assigns the next sequence, persists the event, and fans it out.
// The event is durable before Emit returns. Payload is marshaled to JSON;
// a nil payload produces an event without one.
func (s *Sequencer) Emit(ctx context.Context, sessionID string, evType arena.EventType, payload interface{}) (*arena.GameEvent, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal %s payload", evType)
		}
		raw = data
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq, err := s.nextSeqLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	event := &arena.GameEvent{
		Seq:       seq,
		SessionID: sessionID,
		Type:      evType,
		At:        s.clock.Now(),
		Payload:   raw,
	}

	if _, err := s.repo.Append(ctx, events.AppendInput{Event: event}); err != nil {
		return nil, errors.Wrapf(err, "failed to persist event seq %d", seq)
	}
	s.seqs[sessionID] = seq

	for id, sub := range s.subs[sessionID] {
		select {
		case sub.ch <- event:
		default:
			// Subscriber fell too far behind; cut it loose rather than
			// stall the session.
			close(sub.ch)
			delete(s.subs[sessionID], id)
		}
	}

	return event, nil
}

// nextSeqLocked initializes the in-memory counter from storage on first
// use, then hands out seq+1.
func (s *Sequencer) nextSeqLocked(ctx context.Context, sessionID string) (int64, error) {
	last, ok := s.seqs[sessionID]
	if !ok {
		out, err := s.repo.LastSeq(ctx, events.LastSeqInput{SessionID: sessionID})
		if err != nil {
			return 0, errors.Wrapf(err, "failed to recover last seq")
		}
		last = out.Seq
		s.seqs[sessionID] = last
	}
	return last + 1, nil
}

// Catchup bulk-reads the stream from fromSeq. When the backlog exceeds
// the catch-up limit it returns the recent bootstrap tail instead, with
// Compacted set.
func (s *Sequencer) Catchup(ctx context.Context, sessionID string, fromSeq int64) (*CatchupOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catchupLocked(ctx, sessionID, fromSeq)
}

func (s *Sequencer) catchupLocked(ctx context.Context, sessionID string, fromSeq int64) (*CatchupOutput, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}
	if fromSeq < 1 {
		fromSeq = 1
	}

	last, err := s.repo.LastSeq(ctx, events.LastSeqInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read last seq")
	}

	backlog := last.Seq - fromSeq + 1
	if backlog <= 0 {
		return &CatchupOutput{}, nil
	}

	if backlog > int64(s.limit) {
		tail, err := s.repo.Tail(ctx, events.TailInput{SessionID: sessionID, N: s.tail})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read bootstrap tail")
		}
		return &CatchupOutput{Events: tail.Events, Compacted: true}, nil
	}

	read, err := s.repo.ReadFrom(ctx, events.ReadFromInput{SessionID: sessionID, FromSeq: fromSeq})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read backlog")
	}
	return &CatchupOutput{Events: read.Events}, nil
}

// Subscribe attaches a live consumer starting at fromSeq. The catch-up
// portion is buffered onto the subscription channel before any newer
// event, so the consumer observes a gapless, ordered stream (or a flagged
// compacted tail followed by live events).
func (s *Sequencer) Subscribe(ctx context.Context, sessionID string, fromSeq int64) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Catch-up happens under the same lock Emit holds, so no event can
	// slip between the backlog read and the subscriber registration.
	catchup, err := s.catchupLocked(ctx, sessionID, fromSeq)
	if err != nil {
		return nil, err
	}

	size := s.buffer
	if len(catchup.Events) >= size {
		size = len(catchup.Events) + s.buffer
	}
	ch := make(chan *arena.GameEvent, size)
	for _, ev := range catchup.Events {
		ch <- ev
	}

	s.nextSub++
	id := s.nextSub
	if s.subs[sessionID] == nil {
		s.subs[sessionID] = make(map[int64]*subscriber)
	}
	s.subs[sessionID][id] = &subscriber{ch: ch}

	return &Subscription{
		Events:    ch,
		Compacted: catchup.Compacted,
		id:        id,
		sessionID: sessionID,
	}, nil
}

// Unsubscribe detaches a subscription and closes its channel
func (s *Sequencer) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if subs, ok := s.subs[sub.sessionID]; ok {
		if entry, ok := subs[sub.id]; ok {
			close(entry.ch)
			delete(subs, sub.id)
		}
	}
}

// CloseSession detaches every subscriber of a session
func (s *Sequencer) CloseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.subs[sessionID] {
		close(sub.ch)
		delete(s.subs[sessionID], id)
	}
	delete(s.subs, sessionID)
}

// LastSeq reports the last assigned sequence for a session
func (s *Sequencer) LastSeq(ctx context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, err := s.nextSeqLocked(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return last - 1, nil
}
