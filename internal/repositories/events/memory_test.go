package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/repositories/events"
)

func appendN(t *testing.T, repo events.Repository, sessionID string, n int) {
	t.Helper()
	for seq := int64(1); seq <= int64(n); seq++ {
		_, err := repo.Append(context.Background(), events.AppendInput{
			Event: &arena.GameEvent{
				Seq:       seq,
				SessionID: sessionID,
				Type:      arena.EventChatMessage,
				At:        time.Now().UTC(),
			},
		})
		require.NoError(t, err)
	}
}

func TestMemoryRepository_AppendAndRead(t *testing.T) {
	repo := events.NewMemoryRepository()
	appendN(t, repo, "sess-1", 5)

	out, err := repo.ReadFrom(context.Background(), events.ReadFromInput{
		SessionID: "sess-1", FromSeq: 3,
	})
	require.NoError(t, err)
	require.Len(t, out.Events, 3)
	require.Equal(t, int64(3), out.Events[0].Seq)

	last, err := repo.LastSeq(context.Background(), events.LastSeqInput{SessionID: "sess-1"})
	require.NoError(t, err)
	require.Equal(t, int64(5), last.Seq)
}

func TestMemoryRepository_RejectsOutOfOrder(t *testing.T) {
	repo := events.NewMemoryRepository()
	appendN(t, repo, "sess-1", 1)

	_, err := repo.Append(context.Background(), events.AppendInput{
		Event: &arena.GameEvent{Seq: 5, SessionID: "sess-1", Type: arena.EventChatMessage},
	})
	require.Error(t, err)
	require.True(t, errors.IsFailedPrecondition(err))
}

func TestMemoryRepository_Tail(t *testing.T) {
	repo := events.NewMemoryRepository()
	appendN(t, repo, "sess-1", 10)

	out, err := repo.Tail(context.Background(), events.TailInput{SessionID: "sess-1", N: 3})
	require.NoError(t, err)
	require.Len(t, out.Events, 3)
	require.Equal(t, int64(8), out.Events[0].Seq)
	require.Equal(t, int64(10), out.Events[2].Seq)
}

func TestMemoryRepository_ReadIsolatedFromMutation(t *testing.T) {
	repo := events.NewMemoryRepository()
	appendN(t, repo, "sess-1", 1)

	out, err := repo.ReadFrom(context.Background(), events.ReadFromInput{SessionID: "sess-1", FromSeq: 1})
	require.NoError(t, err)
	out.Events[0].Type = arena.EventSessionEnded

	again, err := repo.ReadFrom(context.Background(), events.ReadFromInput{SessionID: "sess-1", FromSeq: 1})
	require.NoError(t, err)
	require.Equal(t, arena.EventChatMessage, again.Events[0].Type)
}
