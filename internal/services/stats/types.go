package stats

import (
	"time"

	"github.com/gamenighthq/gamenight/internal/models"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
)

// Config holds configuration for the stats service
type Config struct {
	// Repository dependencies
	FriendRepo friendRepo.Repository
	MatchRepo  matchRepo.Repository
}

// GetStatsOverviewInput contains parameters for the overview
type GetStatsOverviewInput struct {
	// IncludeArchived also folds archived friends in
	IncludeArchived bool

	// StartDate and EndDate bound the match range; nil means unbounded
	StartDate *time.Time
	EndDate   *time.Time
}

// FriendStats is one friend's derived summary
type FriendStats struct {
	// FriendID is the friend the stats belong to
	FriendID string

	// DisplayName is the friend's display name
	DisplayName string

	// TotalMatches is the number of confirmed matches the friend
	// played in
	TotalMatches int

	// Wins and Losses split the total
	Wins   int
	Losses int

	// WinRate is wins over total, rounded to three decimals; nil when
	// the friend played no matches
	WinRate *float64

	// TopLane is the most-played lane, UNKNOWN excluded; nil when the
	// friend never played a known lane
	TopLane *models.Lane
}

// GetStatsOverviewOutput contains the sorted per-friend summaries
type GetStatsOverviewOutput struct {
	Entries []*FriendStats
}

// GetStatsDetailInput contains parameters for one friend's detail
type GetStatsDetailInput struct {
	// FriendID is the friend to compute stats for
	FriendID string

	// IncludeArchived allows resolving an archived friend
	IncludeArchived bool

	// StartDate and EndDate bound the match range; nil means unbounded
	StartDate *time.Time
	EndDate   *time.Time
}

// LaneCount is one lane's play count
type LaneCount struct {
	Lane      models.Lane
	PlayCount int
}

// ChampionStats is one champion's record for a friend
type ChampionStats struct {
	// Champion is the champion name; unrecorded champions are bucketed
	// as "Unknown"
	Champion string

	// Wins and Games are the friend's record on this champion
	Wins  int
	Games int

	// WinRate is wins over games, rounded to three decimals
	WinRate float64
}

// GetStatsDetailOutput contains one friend's full breakdown
type GetStatsDetailOutput struct {
	// Summary is the same shape as one overview entry
	Summary *FriendStats

	// LaneDistribution lists played lanes by play count, UNKNOWN
	// excluded
	LaneDistribution []LaneCount

	// TopChampions lists the ten most-played champions by game count
	TopChampions []ChampionStats
}
