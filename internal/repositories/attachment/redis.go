package attachment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for the per-session photo counter, written by the
	// upload pipeline
	attachmentCountPrefix = "session_attachments:"
)

// Config holds configuration for the Redis attachment repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed attachment repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CountBySessionID returns the photo count for a session, zero when the
// counter does not exist
func (r *redisRepository) CountBySessionID(ctx context.Context, input *CountBySessionIDInput) (int, error) {
	if input == nil || input.SessionID == "" {
		return 0, errors.New("input and session ID cannot be empty")
	}

	countKey := fmt.Sprintf("%s%s", attachmentCountPrefix, input.SessionID)
	value, err := r.client.Get(ctx, countKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get attachment count: %w", err)
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("malformed attachment count for session %s: %w", input.SessionID, err)
	}

	return count, nil
}

// CountBySessionIDForUpdate reads the counter while the caller holds
// the session structure lock. The read itself is identical; the lock
// keeps the count stable until the caller's write commits.
func (r *redisRepository) CountBySessionIDForUpdate(ctx context.Context, input *CountBySessionIDInput) (int, error) {
	return r.CountBySessionID(ctx, input)
}
