package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	session_id TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	type       TEXT NOT NULL,
	at         INTEGER NOT NULL,
	payload    BLOB,
	PRIMARY KEY (session_id, seq)
);
`

// OpenSQLite opens (and migrates) a sqlite database at the given path.
// WAL mode keeps readers from blocking the single writer.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate sqlite schema")
	}
	return db, nil
}

// SQLiteConfig holds the configuration for the sqlite event store
type SQLiteConfig struct {
	DB *sql.DB
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	if c.DB == nil {
		return errors.InvalidArgument("sqlite database is required")
	}
	return nil
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a sqlite-backed event store
func NewSQLiteRepository(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &sqliteRepository{db: cfg.DB}, nil
}

var _ Repository = (*sqliteRepository)(nil)

// Append persists one event
func (r *sqliteRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.Event == nil {
		return nil, errors.InvalidArgument(errEventNil)
	}
	if input.Event.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	last, err := r.lastSeq(ctx, input.Event.SessionID)
	if err != nil {
		return nil, err
	}
	if input.Event.Seq != last+1 {
		return nil, errors.FailedPreconditionf(
			"append out of order: got seq %d, expected %d", input.Event.Seq, last+1)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (session_id, seq, type, at, payload) VALUES (?, ?, ?, ?, ?)`,
		input.Event.SessionID, input.Event.Seq, string(input.Event.Type),
		input.Event.At.UnixMilli(), []byte(input.Event.Payload))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert event")
	}

	return &AppendOutput{Seq: input.Event.Seq}, nil
}

// ReadFrom returns events in sequence order starting at FromSeq
func (r *sqliteRepository) ReadFrom(ctx context.Context, input ReadFromInput) (*ReadFromOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	from := input.FromSeq
	if from < 1 {
		from = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, seq, type, at, payload FROM events
		 WHERE session_id = ? AND seq >= ? ORDER BY seq LIMIT ?`,
		input.SessionID, from, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query events")
	}
	defer func() { _ = rows.Close() }()

	out, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	return &ReadFromOutput{Events: out}, nil
}

// Tail returns the last N events in sequence order
func (r *sqliteRepository) Tail(ctx context.Context, input TailInput) (*TailOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.N <= 0 {
		return &TailOutput{}, nil
	}

	last, err := r.lastSeq(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	from := last - int64(input.N) + 1
	if from < 1 {
		from = 1
	}

	read, err := r.ReadFrom(ctx, ReadFromInput{SessionID: input.SessionID, FromSeq: from})
	if err != nil {
		return nil, err
	}
	return &TailOutput{Events: read.Events}, nil
}

// LastSeq returns the highest sequence in the stream
func (r *sqliteRepository) LastSeq(ctx context.Context, input LastSeqInput) (*LastSeqOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	last, err := r.lastSeq(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	return &LastSeqOutput{Seq: last}, nil
}

func (r *sqliteRepository) lastSeq(ctx context.Context, sessionID string) (int64, error) {
	var last sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM events WHERE session_id = ?`, sessionID).Scan(&last)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read last seq")
	}
	return last.Int64, nil
}

func scanEvents(rows *sql.Rows) ([]*arena.GameEvent, error) {
	var out []*arena.GameEvent
	for rows.Next() {
		var (
			ev      arena.GameEvent
			evType  string
			atMilli int64
			payload []byte
		)
		if err := rows.Scan(&ev.SessionID, &ev.Seq, &evType, &atMilli, &payload); err != nil {
			return nil, errors.Wrapf(err, "failed to scan event")
		}
		ev.Type = arena.EventType(evType)
		ev.At = time.UnixMilli(atMilli).UTC()
		if len(payload) > 0 {
			ev.Payload = json.RawMessage(payload)
		}
		out = append(out, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate events")
	}
	return out, nil
}
