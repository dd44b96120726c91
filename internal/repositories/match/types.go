package match

import (
	"time"

	"github.com/gamenighthq/gamenight/internal/models"
)

type SaveMatchInput struct {
	Match *models.Match
}

type GetMatchInput struct {
	MatchID string
}

type GetMatchesBySessionInput struct {
	SessionID string
}

type GetMatchesBySessionOutput struct {
	Matches []*models.Match
}

type DeleteMatchInput struct {
	MatchID string
}

type DeleteBySessionInput struct {
	SessionID string
}

type GetNextMatchNoInput struct {
	SessionID string
}

type GetConfirmedMatchStatsInput struct {
	// FriendID restricts to matches the friend played in; empty means
	// all friends
	FriendID string

	// StartDate and EndDate bound the match creation time; nil means
	// unbounded
	StartDate *time.Time
	EndDate   *time.Time
}

type GetConfirmedMatchStatsOutput struct {
	Matches []*models.MatchStats
}
