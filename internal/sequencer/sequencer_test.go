package sequencer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/pkg/clock"
	"github.com/arenaforge/arena-api/internal/repositories/events"
	"github.com/arenaforge/arena-api/internal/sequencer"
)

type SequencerTestSuite struct {
	suite.Suite
	seq   *sequencer.Sequencer
	repo  events.Repository
	clock *clock.Fixed
	ctx   context.Context
}

func (s *SequencerTestSuite) SetupTest() {
	s.repo = events.NewMemoryRepository()
	s.clock = clock.NewFixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	seq, err := sequencer.New(&sequencer.Config{
		Repo:          s.repo,
		Clock:         s.clock,
		CatchupLimit:  10,
		BootstrapTail: 4,
	})
	s.Require().NoError(err)
	s.seq = seq
	s.ctx = context.Background()
}

func (s *SequencerTestSuite) emitN(sessionID string, n int) {
	for i := 0; i < n; i++ {
		_, err := s.seq.Emit(s.ctx, sessionID, arena.EventChatMessage,
			arena.ChatMessagePayload{From: "DM", Text: "..."})
		s.Require().NoError(err)
	}
}

func (s *SequencerTestSuite) TestEmitAssignsGaplessSeq() {
	for want := int64(1); want <= 5; want++ {
		ev, err := s.seq.Emit(s.ctx, "sess-1", arena.EventChatMessage, nil)
		s.Require().NoError(err)
		s.Equal(want, ev.Seq)
		s.Equal(s.clock.Now(), ev.At)
	}

	last, err := s.seq.LastSeq(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(int64(5), last)
}

func (s *SequencerTestSuite) TestEmitIsDurableBeforeReturn() {
	ev, err := s.seq.Emit(s.ctx, "sess-1", arena.EventSessionCreated,
		arena.SessionCreatedPayload{SessionID: "sess-1", Genre: "factory"})
	s.Require().NoError(err)

	stored, err := s.repo.ReadFrom(s.ctx, events.ReadFromInput{SessionID: "sess-1", FromSeq: 1})
	s.Require().NoError(err)
	s.Require().Len(stored.Events, 1)
	s.Equal(ev.Seq, stored.Events[0].Seq)

	var payload arena.SessionCreatedPayload
	s.Require().NoError(stored.Events[0].DecodePayload(&payload))
	s.Equal("factory", payload.Genre)
}

func (s *SequencerTestSuite) TestEmitRecoversSeqFromStorage() {
	s.emitN("sess-1", 3)

	// A fresh sequencer over the same store continues the sequence
	fresh, err := sequencer.New(&sequencer.Config{
		Repo:          s.repo,
		Clock:         s.clock,
		CatchupLimit:  10,
		BootstrapTail: 4,
	})
	s.Require().NoError(err)

	ev, err := fresh.Emit(s.ctx, "sess-1", arena.EventChatMessage, nil)
	s.Require().NoError(err)
	s.Equal(int64(4), ev.Seq)
}

func (s *SequencerTestSuite) TestSubscribeDeliversCatchupThenLive() {
	s.emitN("sess-1", 3)

	sub, err := s.seq.Subscribe(s.ctx, "sess-1", 1)
	s.Require().NoError(err)
	defer s.seq.Unsubscribe(sub)
	s.False(sub.Compacted)

	s.emitN("sess-1", 2)

	var got []int64
	for i := 0; i < 5; i++ {
		select {
		case ev := <-sub.Events:
			got = append(got, ev.Seq)
		case <-time.After(time.Second):
			s.FailNow("missing event")
		}
	}
	s.Equal([]int64{1, 2, 3, 4, 5}, got)
}

func (s *SequencerTestSuite) TestSubscribeTailFollowFromSeq() {
	s.emitN("sess-1", 5)

	sub, err := s.seq.Subscribe(s.ctx, "sess-1", 4)
	s.Require().NoError(err)
	defer s.seq.Unsubscribe(sub)

	ev := <-sub.Events
	s.Equal(int64(4), ev.Seq)
	ev = <-sub.Events
	s.Equal(int64(5), ev.Seq)
}

func (s *SequencerTestSuite) TestCompressedBootstrapWhenBacklogExceedsLimit() {
	s.emitN("sess-1", 15) // backlog 15 > limit 10

	out, err := s.seq.Catchup(s.ctx, "sess-1", 1)
	s.Require().NoError(err)
	s.True(out.Compacted)
	s.Require().Len(out.Events, 4) // bootstrap tail
	s.Equal(int64(12), out.Events[0].Seq)
	s.Equal(int64(15), out.Events[3].Seq)
}

func (s *SequencerTestSuite) TestCatchupWithinLimitIsLossless() {
	s.emitN("sess-1", 8)

	out, err := s.seq.Catchup(s.ctx, "sess-1", 2)
	s.Require().NoError(err)
	s.False(out.Compacted)
	s.Require().Len(out.Events, 7)
	s.Equal(int64(2), out.Events[0].Seq)
}

func (s *SequencerTestSuite) TestCatchupPastEndIsEmpty() {
	s.emitN("sess-1", 2)

	out, err := s.seq.Catchup(s.ctx, "sess-1", 10)
	s.Require().NoError(err)
	s.Empty(out.Events)
	s.False(out.Compacted)
}

func (s *SequencerTestSuite) TestCloseSessionClosesSubscribers() {
	sub, err := s.seq.Subscribe(s.ctx, "sess-1", 1)
	s.Require().NoError(err)

	s.seq.CloseSession("sess-1")

	_, open := <-sub.Events
	s.False(open)
}

func (s *SequencerTestSuite) TestSlowSubscriberIsDropped() {
	tiny, err := sequencer.New(&sequencer.Config{
		Repo:             events.NewMemoryRepository(),
		Clock:            s.clock,
		CatchupLimit:     10,
		BootstrapTail:    4,
		SubscriberBuffer: 1,
	})
	s.Require().NoError(err)

	sub, err := tiny.Subscribe(s.ctx, "sess-1", 1)
	s.Require().NoError(err)

	// First emit fills the buffer, second overflows and drops the sub
	_, err = tiny.Emit(s.ctx, "sess-1", arena.EventChatMessage, nil)
	s.Require().NoError(err)
	_, err = tiny.Emit(s.ctx, "sess-1", arena.EventChatMessage, nil)
	s.Require().NoError(err)

	ev, open := <-sub.Events
	s.True(open)
	s.Equal(int64(1), ev.Seq)
	_, open = <-sub.Events
	s.False(open)
}

func TestSequencerSuite(t *testing.T) {
	suite.Run(t, new(SequencerTestSuite))
}
