package match

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/gamenighthq/gamenight/internal/repositories/match Repository

import (
	"context"

	"github.com/gamenighthq/gamenight/internal/models"
)

// Repository defines the interface for match persistence. SaveMatch is
// a full upsert: the stored member collection is replaced by the
// aggregate's current one.
type Repository interface {
	// SaveMatch persists a match with its member rows
	SaveMatch(ctx context.Context, input *SaveMatchInput) error

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, input *GetMatchInput) (*models.Match, error)

	// GetMatchesBySession retrieves a session's matches ordered by
	// match number
	GetMatchesBySession(ctx context.Context, input *GetMatchesBySessionInput) (*GetMatchesBySessionOutput, error)

	// DeleteMatch removes a match
	DeleteMatch(ctx context.Context, input *DeleteMatchInput) error

	// DeleteBySession removes all of a session's matches and its match
	// number counter
	DeleteBySession(ctx context.Context, input *DeleteBySessionInput) error

	// GetNextMatchNo atomically reserves the next match number for a
	// session. Numbers are strictly increasing and never reused, even
	// under concurrent match creation.
	GetNextMatchNo(ctx context.Context, input *GetNextMatchNoInput) (int, error)

	// GetConfirmedMatchStats returns the raw per-player rows of all
	// confirmed matches, optionally filtered by friend and date range
	GetConfirmedMatchStats(ctx context.Context, input *GetConfirmedMatchStatsInput) (*GetConfirmedMatchStatsOutput, error)
}
