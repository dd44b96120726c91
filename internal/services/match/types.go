package match

import (
	"github.com/gamenighthq/gamenight/internal/common/clock"
	"github.com/gamenighthq/gamenight/internal/common/uuid"
	"github.com/gamenighthq/gamenight/internal/models"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	sessionRepo "github.com/gamenighthq/gamenight/internal/repositories/session"
)

// Config holds configuration for the match service
type Config struct {
	// Repository dependencies
	MatchRepo   matchRepo.Repository
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateMatchInput contains parameters for recording a new match
type CreateMatchInput struct {
	// SessionID is the session the match belongs to
	SessionID string

	// Members are the team assignments; empty means copy the session's
	// team presets
	Members []models.TeamAssignment
}

// CreateMatchOutput contains the created draft match
type CreateMatchOutput struct {
	Match *models.Match
}

type GetMatchInput struct {
	MatchID string
}

type GetMatchOutput struct {
	Match *models.Match
}

type ListMatchesInput struct {
	SessionID string
}

type ListMatchesOutput struct {
	Matches []*models.Match
}

type SetLaneInput struct {
	MatchID  string
	FriendID string
	Lane     models.Lane
}

type SetLaneOutput struct {
	Match *models.Match
}

type SetChampionInput struct {
	MatchID  string
	FriendID string

	// Champion is trimmed; nil or blank clears it
	Champion *string
}

type SetChampionOutput struct {
	Match *models.Match
}

type ConfirmResultInput struct {
	MatchID    string
	WinnerSide models.Side
	TeamASide  models.Side
}

type ConfirmResultOutput struct {
	Match *models.Match
}

type DeleteMatchInput struct {
	MatchID string
}
