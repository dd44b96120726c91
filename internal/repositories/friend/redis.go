package friend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gamenighthq/gamenight/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

const (
	// Key prefixes for Redis
	friendKeyPrefix = "friend:"
	allFriendsKey   = "friends"
)

// ErrFriendNotFound is returned when a friend is not found
var ErrFriendNotFound = errors.New("friend not found")

// Config holds configuration for the Redis friend repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed friend repository
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

// SaveFriend persists a friend to Redis
func (r *redisRepository) SaveFriend(ctx context.Context, input *SaveFriendInput) error {
	if input == nil || input.Friend == nil {
		return errors.New("input and friend cannot be nil")
	}

	friendJSON, err := json.Marshal(input.Friend)
	if err != nil {
		return fmt.Errorf("failed to marshal friend: %w", err)
	}

	pipe := r.client.Pipeline()

	friendKey := fmt.Sprintf("%s%s", friendKeyPrefix, input.Friend.ID)
	pipe.Set(ctx, friendKey, friendJSON, 0)
	pipe.ZAdd(ctx, allFriendsKey, redis.Z{
		Score:  float64(input.Friend.CreatedAt.UnixMilli()),
		Member: input.Friend.ID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save friend: %w", err)
	}

	return nil
}

// GetFriend retrieves a friend by ID from Redis
func (r *redisRepository) GetFriend(ctx context.Context, input *GetFriendInput) (*models.Friend, error) {
	if input == nil || input.FriendID == "" {
		return nil, errors.New("input and friend ID cannot be empty")
	}

	friendKey := fmt.Sprintf("%s%s", friendKeyPrefix, input.FriendID)
	friendJSON, err := r.client.Get(ctx, friendKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrFriendNotFound
		}
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}

	var friend models.Friend
	if err := json.Unmarshal([]byte(friendJSON), &friend); err != nil {
		return nil, fmt.Errorf("failed to unmarshal friend: %w", err)
	}

	return &friend, nil
}

// ListFriends retrieves friends in creation order, excluding archived
// ones unless requested
func (r *redisRepository) ListFriends(ctx context.Context, input *ListFriendsInput) (*ListFriendsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	friends, err := r.getAllFriends(ctx)
	if err != nil {
		return nil, err
	}

	if !input.IncludeArchived {
		friends = lo.Filter(friends, func(f *models.Friend, _ int) bool {
			return !f.Archived
		})
	}

	return &ListFriendsOutput{
		Friends: friends,
	}, nil
}

// GetActiveFriendIDs retrieves the ids of all non-archived friends
func (r *redisRepository) GetActiveFriendIDs(ctx context.Context) ([]string, error) {
	friends, err := r.getAllFriends(ctx)
	if err != nil {
		return nil, err
	}

	active := lo.Filter(friends, func(f *models.Friend, _ int) bool {
		return !f.Archived
	})

	return lo.Map(active, func(f *models.Friend, _ int) string {
		return f.ID
	}), nil
}

// getAllFriends fetches every friend in creation order
func (r *redisRepository) getAllFriends(ctx context.Context) ([]*models.Friend, error) {
	friendIDs, err := r.client.ZRange(ctx, allFriendsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get friend IDs: %w", err)
	}

	if len(friendIDs) == 0 {
		return []*models.Friend{}, nil
	}

	pipe := r.client.Pipeline()
	friendCommands := make([]*redis.StringCmd, 0, len(friendIDs))
	for _, friendID := range friendIDs {
		friendCommands = append(friendCommands, pipe.Get(ctx, fmt.Sprintf("%s%s", friendKeyPrefix, friendID)))
	}

	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}

	friends := make([]*models.Friend, 0, len(friendIDs))
	for i, cmd := range friendCommands {
		friendJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get friend %s: %w", friendIDs[i], err)
		}

		var friend models.Friend
		if err := json.Unmarshal([]byte(friendJSON), &friend); err != nil {
			return nil, fmt.Errorf("failed to unmarshal friend %s: %w", friendIDs[i], err)
		}

		friends = append(friends, &friend)
	}

	return friends, nil
}
