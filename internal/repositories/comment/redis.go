package comment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gamenighthq/gamenight/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	commentKeyPrefix      = "comment:"
	sessionCommentsPrefix = "session_comments:"
)

// ErrCommentNotFound is returned when a comment is not found
var ErrCommentNotFound = errors.New("comment not found")

// Config holds configuration for the Redis comment repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed comment repository
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

// SaveComment persists a comment to Redis
func (r *redisRepository) SaveComment(ctx context.Context, input *SaveCommentInput) error {
	if input == nil || input.Comment == nil {
		return errors.New("input and comment cannot be nil")
	}

	commentJSON, err := json.Marshal(input.Comment)
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	pipe := r.client.Pipeline()

	commentKey := fmt.Sprintf("%s%s", commentKeyPrefix, input.Comment.ID)
	pipe.Set(ctx, commentKey, commentJSON, 0)

	sessionCommentsKey := fmt.Sprintf("%s%s", sessionCommentsPrefix, input.Comment.SessionID)
	pipe.ZAdd(ctx, sessionCommentsKey, redis.Z{
		Score:  float64(input.Comment.CreatedAt.UnixMilli()),
		Member: input.Comment.ID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by ID from Redis
func (r *redisRepository) GetComment(ctx context.Context, input *GetCommentInput) (*models.Comment, error) {
	if input == nil || input.CommentID == "" {
		return nil, errors.New("input and comment ID cannot be empty")
	}

	commentKey := fmt.Sprintf("%s%s", commentKeyPrefix, input.CommentID)
	commentJSON, err := r.client.Get(ctx, commentKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	var comment models.Comment
	if err := json.Unmarshal([]byte(commentJSON), &comment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
	}

	return &comment, nil
}

// ListBySession retrieves a session's comments in posting order
func (r *redisRepository) ListBySession(ctx context.Context, input *ListBySessionInput) (*ListBySessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionCommentsKey := fmt.Sprintf("%s%s", sessionCommentsPrefix, input.SessionID)
	commentIDs, err := r.client.ZRange(ctx, sessionCommentsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment IDs for session: %w", err)
	}

	if len(commentIDs) == 0 {
		return &ListBySessionOutput{
			Comments: []*models.Comment{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commentCommands := make([]*redis.StringCmd, 0, len(commentIDs))
	for _, commentID := range commentIDs {
		commentCommands = append(commentCommands, pipe.Get(ctx, fmt.Sprintf("%s%s", commentKeyPrefix, commentID)))
	}

	_, err = pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	comments := make([]*models.Comment, 0, len(commentIDs))
	for i, cmd := range commentCommands {
		commentJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get comment %s: %w", commentIDs[i], err)
		}

		var comment models.Comment
		if err := json.Unmarshal([]byte(commentJSON), &comment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment %s: %w", commentIDs[i], err)
		}

		comments = append(comments, &comment)
	}

	return &ListBySessionOutput{
		Comments: comments,
	}, nil
}

// DeleteComment removes a comment from Redis
func (r *redisRepository) DeleteComment(ctx context.Context, input *DeleteCommentInput) error {
	if input == nil || input.CommentID == "" {
		return errors.New("input and comment ID cannot be empty")
	}

	comment, err := r.GetComment(ctx, &GetCommentInput{CommentID: input.CommentID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, fmt.Sprintf("%s%s", commentKeyPrefix, input.CommentID))
	pipe.ZRem(ctx, fmt.Sprintf("%s%s", sessionCommentsPrefix, comment.SessionID), input.CommentID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// DeleteBySession removes all of a session's comments
func (r *redisRepository) DeleteBySession(ctx context.Context, input *DeleteBySessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	sessionCommentsKey := fmt.Sprintf("%s%s", sessionCommentsPrefix, input.SessionID)
	commentIDs, err := r.client.ZRange(ctx, sessionCommentsKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get comment IDs for session: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, commentID := range commentIDs {
		pipe.Del(ctx, fmt.Sprintf("%s%s", commentKeyPrefix, commentID))
	}
	pipe.Del(ctx, sessionCommentsKey)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session comments: %w", err)
	}

	return nil
}
