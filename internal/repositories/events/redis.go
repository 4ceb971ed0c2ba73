package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	redisclient "github.com/arenaforge/arena-api/internal/redis"
)

const (
	// Key pattern: events:{session_id}, a list where index i holds seq i+1
	eventKeyPrefix = "events:"

	errSessionIDEmpty = "session ID cannot be empty"
	errEventNil       = "event cannot be nil"
)

// RedisConfig holds the configuration for the Redis event store
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis-backed event store
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Append persists one event at the tail of the session list
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.Event == nil {
		return nil, errors.InvalidArgument(errEventNil)
	}
	if input.Event.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := r.buildKey(input.Event.SessionID)

	length, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stream length")
	}
	if input.Event.Seq != length+1 {
		return nil, errors.FailedPreconditionf(
			"append out of order: got seq %d, expected %d", input.Event.Seq, length+1)
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal event")
	}

	if err := r.client.RPush(ctx, key, eventJSON).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to append event")
	}

	return &AppendOutput{Seq: input.Event.Seq}, nil
}

// ReadFrom returns events in sequence order starting at FromSeq
func (r *redisRepository) ReadFrom(ctx context.Context, input ReadFromInput) (*ReadFromOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	from := input.FromSeq
	if from < 1 {
		from = 1
	}
	start := from - 1
	stop := int64(-1)
	if input.Limit > 0 {
		stop = start + int64(input.Limit) - 1
	}

	raw, err := r.client.LRange(ctx, r.buildKey(input.SessionID), start, stop).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read events")
	}

	out, err := decodeAll(raw)
	if err != nil {
		return nil, err
	}
	return &ReadFromOutput{Events: out}, nil
}

// Tail returns the last N events in sequence order
func (r *redisRepository) Tail(ctx context.Context, input TailInput) (*TailOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.N <= 0 {
		return &TailOutput{}, nil
	}

	raw, err := r.client.LRange(ctx, r.buildKey(input.SessionID), int64(-input.N), -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read event tail")
	}

	out, err := decodeAll(raw)
	if err != nil {
		return nil, err
	}
	return &TailOutput{Events: out}, nil
}

// LastSeq returns the highest sequence in the stream
func (r *redisRepository) LastSeq(ctx context.Context, input LastSeqInput) (*LastSeqOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	length, err := r.client.LLen(ctx, r.buildKey(input.SessionID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stream length")
	}
	return &LastSeqOutput{Seq: length}, nil
}

func (r *redisRepository) buildKey(sessionID string) string {
	return fmt.Sprintf("%s%s", eventKeyPrefix, sessionID)
}

func decodeAll(raw []string) ([]*arena.GameEvent, error) {
	out := make([]*arena.GameEvent, 0, len(raw))
	for _, item := range raw {
		var ev arena.GameEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal event")
		}
		out = append(out, &ev)
	}
	return out, nil
}
