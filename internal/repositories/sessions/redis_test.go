package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/repositories/sessions"
	"github.com/arenaforge/arena-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    sessions.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := sessions.NewRedisRepository(&sessions.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *RedisRepositoryTestSuite) session(id string, createdAt time.Time) *arena.Session {
	return &arena.Session{
		ID:        id,
		Genre:     "factory",
		Title:     "봉기: 제1공장",
		State:     arena.StateLobby,
		CreatedAt: createdAt,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	_, err := s.repo.Save(s.ctx, sessions.SaveInput{Session: s.session("sess-1", created)})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, sessions.GetInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal("factory", got.Session.Genre)
	s.Equal(arena.StateLobby, got.Session.State)
	s.True(got.Session.CreatedAt.Equal(created))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, sessions.GetInput{SessionID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveIsUpsert() {
	sess := s.session("sess-1", time.Now().UTC())
	_, err := s.repo.Save(s.ctx, sessions.SaveInput{Session: sess})
	s.Require().NoError(err)

	sess.State = arena.StateEnded
	sess.EndReason = arena.EndVictory
	_, err = s.repo.Save(s.ctx, sessions.SaveInput{Session: sess})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, sessions.GetInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(arena.StateEnded, got.Session.State)
	s.Equal(arena.EndVictory, got.Session.EndReason)
}

func (s *RedisRepositoryTestSuite) TestListNewestFirst() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"sess-a", "sess-b", "sess-c"} {
		_, err := s.repo.Save(s.ctx, sessions.SaveInput{
			Session: s.session(id, base.Add(time.Duration(i)*time.Hour)),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.List(s.ctx, sessions.ListInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 2)
	s.Equal("sess-c", out.Sessions[0].ID)
	s.Equal("sess-b", out.Sessions[1].ID)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
