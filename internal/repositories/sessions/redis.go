package sessions

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	redisclient "github.com/arenaforge/arena-api/internal/redis"
)

const (
	// Key patterns: session:{id} for records, sessions:index for ordering
	sessionKeyPrefix = "session:"
	indexKey         = "sessions:index"

	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
)

// RedisConfig holds the configuration for the Redis session archive
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

// NewRedisRepository creates a Redis-backed session archive
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Save upserts a session record
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(input.Session.ID)
	if err := r.client.Set(ctx, key, sessionJSON, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session")
	}

	err = r.client.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(input.Session.CreatedAt.UnixMilli()),
		Member: input.Session.ID,
	}).Err()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to index session")
	}

	return &SaveOutput{Session: input.Session}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	sessionJSON, err := r.client.Get(ctx, r.buildKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session %s not found", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get session")
	}

	var session arena.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	return &GetOutput{Session: &session}, nil
}

// List returns sessions newest first
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	ids, err := r.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list session index")
	}

	out := make([]*arena.Session, 0, len(ids))
	for _, id := range ids {
		got, err := r.Get(ctx, GetInput{SessionID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, got.Session)
	}
	return &ListOutput{Sessions: out}, nil
}

func (r *redisRepository) buildKey(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
}
