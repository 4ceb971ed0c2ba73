package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/repositories/events"
	"github.com/arenaforge/arena-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    events.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := events.NewRedisRepository(&events.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *RedisRepositoryTestSuite) event(sessionID string, seq int64, evType arena.EventType) *arena.GameEvent {
	payload, err := json.Marshal(map[string]any{"seq_hint": seq})
	s.Require().NoError(err)
	return &arena.GameEvent{
		Seq:       seq,
		SessionID: sessionID,
		Type:      evType,
		At:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:   payload,
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAssignsInOrder() {
	for seq := int64(1); seq <= 3; seq++ {
		out, err := s.repo.Append(s.ctx, events.AppendInput{
			Event: s.event("sess-1", seq, arena.EventChatMessage),
		})
		s.Require().NoError(err)
		s.Equal(seq, out.Seq)
	}

	last, err := s.repo.LastSeq(s.ctx, events.LastSeqInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(int64(3), last.Seq)
}

func (s *RedisRepositoryTestSuite) TestAppendRejectsGaps() {
	_, err := s.repo.Append(s.ctx, events.AppendInput{
		Event: s.event("sess-1", 1, arena.EventSessionCreated),
	})
	s.Require().NoError(err)

	_, err = s.repo.Append(s.ctx, events.AppendInput{
		Event: s.event("sess-1", 3, arena.EventChatMessage),
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RedisRepositoryTestSuite) TestStreamsAreIndependent() {
	_, err := s.repo.Append(s.ctx, events.AppendInput{
		Event: s.event("sess-1", 1, arena.EventSessionCreated),
	})
	s.Require().NoError(err)

	// A second session starts back at seq 1
	_, err = s.repo.Append(s.ctx, events.AppendInput{
		Event: s.event("sess-2", 1, arena.EventSessionCreated),
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestReadFromWithLimit() {
	for seq := int64(1); seq <= 5; seq++ {
		_, err := s.repo.Append(s.ctx, events.AppendInput{
			Event: s.event("sess-1", seq, arena.EventChatMessage),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.ReadFrom(s.ctx, events.ReadFromInput{
		SessionID: "sess-1", FromSeq: 2, Limit: 2,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 2)
	s.Equal(int64(2), out.Events[0].Seq)
	s.Equal(int64(3), out.Events[1].Seq)
}

func (s *RedisRepositoryTestSuite) TestReadFromPastEnd() {
	_, err := s.repo.Append(s.ctx, events.AppendInput{
		Event: s.event("sess-1", 1, arena.EventSessionCreated),
	})
	s.Require().NoError(err)

	out, err := s.repo.ReadFrom(s.ctx, events.ReadFromInput{
		SessionID: "sess-1", FromSeq: 10,
	})
	s.Require().NoError(err)
	s.Empty(out.Events)
}

func (s *RedisRepositoryTestSuite) TestTail() {
	for seq := int64(1); seq <= 5; seq++ {
		_, err := s.repo.Append(s.ctx, events.AppendInput{
			Event: s.event("sess-1", seq, arena.EventChatMessage),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.Tail(s.ctx, events.TailInput{SessionID: "sess-1", N: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 2)
	s.Equal(int64(4), out.Events[0].Seq)
	s.Equal(int64(5), out.Events[1].Seq)

	// Tail larger than the stream returns everything
	out, err = s.repo.Tail(s.ctx, events.TailInput{SessionID: "sess-1", N: 50})
	s.Require().NoError(err)
	s.Len(out.Events, 5)
}

func (s *RedisRepositoryTestSuite) TestLastSeqEmptyStream() {
	last, err := s.repo.LastSeq(s.ctx, events.LastSeqInput{SessionID: "nope"})
	s.Require().NoError(err)
	s.Equal(int64(0), last.Seq)
}

func (s *RedisRepositoryTestSuite) TestPayloadRoundTrip() {
	_, err := s.repo.Append(s.ctx, events.AppendInput{
		Event: s.event("sess-1", 1, arena.EventHPChanged),
	})
	s.Require().NoError(err)

	out, err := s.repo.ReadFrom(s.ctx, events.ReadFromInput{SessionID: "sess-1", FromSeq: 1})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)

	var payload map[string]any
	s.Require().NoError(out.Events[0].DecodePayload(&payload))
	s.Equal(float64(1), payload["seq_hint"])
	s.Equal(arena.EventHPChanged, out.Events[0].Type)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
