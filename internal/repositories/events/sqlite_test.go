package events_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/repositories/events"
)

func newSQLiteRepo(t *testing.T) events.Repository {
	t.Helper()
	db, err := events.OpenSQLite(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := events.NewSQLiteRepository(&events.SQLiteConfig{DB: db})
	require.NoError(t, err)
	return repo
}

func TestSQLiteRepository_AppendAndRead(t *testing.T) {
	repo := newSQLiteRepo(t)
	appendN(t, repo, "sess-1", 4)

	out, err := repo.ReadFrom(context.Background(), events.ReadFromInput{
		SessionID: "sess-1", FromSeq: 2, Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, out.Events, 2)
	require.Equal(t, int64(2), out.Events[0].Seq)
	require.Equal(t, int64(3), out.Events[1].Seq)
}

func TestSQLiteRepository_TailAndLastSeq(t *testing.T) {
	repo := newSQLiteRepo(t)
	appendN(t, repo, "sess-1", 6)

	last, err := repo.LastSeq(context.Background(), events.LastSeqInput{SessionID: "sess-1"})
	require.NoError(t, err)
	require.Equal(t, int64(6), last.Seq)

	tail, err := repo.Tail(context.Background(), events.TailInput{SessionID: "sess-1", N: 2})
	require.NoError(t, err)
	require.Len(t, tail.Events, 2)
	require.Equal(t, int64(5), tail.Events[0].Seq)
}

func TestSQLiteRepository_TimestampRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	_, err := repo.Append(context.Background(), events.AppendInput{
		Event: &arena.GameEvent{Seq: 1, SessionID: "sess-1", Type: arena.EventSessionCreated, At: at},
	})
	require.NoError(t, err)

	out, err := repo.ReadFrom(context.Background(), events.ReadFromInput{SessionID: "sess-1", FromSeq: 1})
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	require.True(t, out.Events[0].At.Equal(at))
}
