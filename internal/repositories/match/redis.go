package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gamenighthq/gamenight/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	matchKeyPrefix       = "match:"
	allMatchesKey        = "matches"
	sessionMatchesPrefix = "session_matches:"
	sessionMatchNoPrefix = "session_match_no:"
)

// ErrMatchNotFound is returned when a match is not found
var ErrMatchNotFound = errors.New("match not found")

// Config holds configuration for the Redis match repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed match repository
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

// SaveMatch persists a match to Redis. The whole aggregate is stored as
// one JSON blob, so the member collection is replaced on every save.
func (r *redisRepository) SaveMatch(ctx context.Context, input *SaveMatchInput) error {
	if input == nil || input.Match == nil {
		return errors.New("input and match cannot be nil")
	}

	matchJSON, err := json.Marshal(input.Match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	pipe := r.client.Pipeline()

	matchKey := fmt.Sprintf("%s%s", matchKeyPrefix, input.Match.ID)
	pipe.Set(ctx, matchKey, matchJSON, 0)

	// Index by session, ordered by match number
	sessionMatchesKey := fmt.Sprintf("%s%s", sessionMatchesPrefix, input.Match.SessionID)
	pipe.ZAdd(ctx, sessionMatchesKey, redis.Z{
		Score:  float64(input.Match.MatchNo),
		Member: input.Match.ID,
	})

	// Global index ordered by creation time, used by the stats query
	pipe.ZAdd(ctx, allMatchesKey, redis.Z{
		Score:  float64(input.Match.CreatedAt.UnixMilli()),
		Member: input.Match.ID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

// GetMatch retrieves a match by ID from Redis
func (r *redisRepository) GetMatch(ctx context.Context, input *GetMatchInput) (*models.Match, error) {
	if input == nil || input.MatchID == "" {
		return nil, errors.New("input and match ID cannot be empty")
	}

	matchKey := fmt.Sprintf("%s%s", matchKeyPrefix, input.MatchID)
	matchJSON, err := r.client.Get(ctx, matchKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	var match models.Match
	if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// GetMatchesBySession retrieves a session's matches ordered by match number
func (r *redisRepository) GetMatchesBySession(ctx context.Context, input *GetMatchesBySessionInput) (*GetMatchesBySessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionMatchesKey := fmt.Sprintf("%s%s", sessionMatchesPrefix, input.SessionID)
	matchIDs, err := r.client.ZRange(ctx, sessionMatchesKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get match IDs for session: %w", err)
	}

	matches, err := r.getMatches(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	return &GetMatchesBySessionOutput{
		Matches: matches,
	}, nil
}

// DeleteMatch removes a match from Redis
func (r *redisRepository) DeleteMatch(ctx context.Context, input *DeleteMatchInput) error {
	if input == nil || input.MatchID == "" {
		return errors.New("input and match ID cannot be empty")
	}

	// Get the match first to find its session index entry
	match, err := r.GetMatch(ctx, &GetMatchInput{MatchID: input.MatchID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()

	matchKey := fmt.Sprintf("%s%s", matchKeyPrefix, input.MatchID)
	pipe.Del(ctx, matchKey)

	sessionMatchesKey := fmt.Sprintf("%s%s", sessionMatchesPrefix, match.SessionID)
	pipe.ZRem(ctx, sessionMatchesKey, input.MatchID)
	pipe.ZRem(ctx, allMatchesKey, input.MatchID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return nil
}

// DeleteBySession removes all of a session's matches, its match index
// and its match number counter
func (r *redisRepository) DeleteBySession(ctx context.Context, input *DeleteBySessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	sessionMatchesKey := fmt.Sprintf("%s%s", sessionMatchesPrefix, input.SessionID)
	matchIDs, err := r.client.ZRange(ctx, sessionMatchesKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get match IDs for session: %w", err)
	}

	pipe := r.client.Pipeline()

	for _, matchID := range matchIDs {
		pipe.Del(ctx, fmt.Sprintf("%s%s", matchKeyPrefix, matchID))
		pipe.ZRem(ctx, allMatchesKey, matchID)
	}
	pipe.Del(ctx, sessionMatchesKey)
	pipe.Del(ctx, fmt.Sprintf("%s%s", sessionMatchNoPrefix, input.SessionID))

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session matches: %w", err)
	}

	return nil
}

// GetNextMatchNo reserves the next match number for a session via INCR,
// so concurrent creators never observe the same number
func (r *redisRepository) GetNextMatchNo(ctx context.Context, input *GetNextMatchNoInput) (int, error) {
	if input == nil || input.SessionID == "" {
		return 0, errors.New("input and session ID cannot be empty")
	}

	counterKey := fmt.Sprintf("%s%s", sessionMatchNoPrefix, input.SessionID)
	matchNo, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to reserve match number: %w", err)
	}

	return int(matchNo), nil
}

// GetConfirmedMatchStats returns the raw rows of all confirmed matches
// in creation order, optionally filtered by friend and date range
func (r *redisRepository) GetConfirmedMatchStats(ctx context.Context, input *GetConfirmedMatchStatsInput) (*GetConfirmedMatchStatsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	min := "-inf"
	if input.StartDate != nil {
		min = strconv.FormatInt(input.StartDate.UnixMilli(), 10)
	}
	max := "+inf"
	if input.EndDate != nil {
		max = strconv.FormatInt(input.EndDate.UnixMilli(), 10)
	}

	matchIDs, err := r.client.ZRangeByScore(ctx, allMatchesKey, &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get match IDs: %w", err)
	}

	matches, err := r.getMatches(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	stats := make([]*models.MatchStats, 0, len(matches))
	for _, match := range matches {
		if !match.IsConfirmed {
			continue
		}

		members := make([]models.MatchStatsMember, 0, len(match.Members))
		containsFriend := input.FriendID == ""
		for _, member := range match.Members {
			if member.FriendID == input.FriendID {
				containsFriend = true
			}
			members = append(members, models.MatchStatsMember{
				FriendID: member.FriendID,
				Team:     member.Team,
				Lane:     member.Lane,
				Champion: member.Champion,
			})
		}
		if !containsFriend {
			continue
		}

		stats = append(stats, &models.MatchStats{
			MatchID:    match.ID,
			SessionID:  match.SessionID,
			WinnerSide: match.WinnerSide,
			TeamASide:  match.TeamASide,
			Members:    members,
		})
	}

	return &GetConfirmedMatchStatsOutput{
		Matches: stats,
	}, nil
}

// getMatches fetches matches by id, preserving the input order and
// skipping ids deleted in between
func (r *redisRepository) getMatches(ctx context.Context, matchIDs []string) ([]*models.Match, error) {
	if len(matchIDs) == 0 {
		return []*models.Match{}, nil
	}

	pipe := r.client.Pipeline()
	matchCommands := make([]*redis.StringCmd, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		matchCommands = append(matchCommands, pipe.Get(ctx, fmt.Sprintf("%s%s", matchKeyPrefix, matchID)))
	}

	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	matches := make([]*models.Match, 0, len(matchIDs))
	for i, cmd := range matchCommands {
		matchJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get match %s: %w", matchIDs[i], err)
		}

		var match models.Match
		if err := json.Unmarshal([]byte(matchJSON), &match); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match %s: %w", matchIDs[i], err)
		}

		matches = append(matches, &match)
	}

	return matches, nil
}
