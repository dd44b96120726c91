package stats

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"github.com/gamenighthq/gamenight/internal/models"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// service implements the Service interface. Both use cases are pure
// folds over the confirmed-match snapshot; nothing here writes.
type service struct {
	friendRepo friendRepo.Repository
	matchRepo  matchRepo.Repository
	collator   *collate.Collator
}

// New creates a new stats service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.FriendRepo == nil {
		return nil, ErrNilFriendRepo
	}
	if cfg.MatchRepo == nil {
		return nil, ErrNilMatchRepo
	}

	return &service{
		friendRepo: cfg.FriendRepo,
		matchRepo:  cfg.MatchRepo,
		collator:   collate.New(language.Und),
	}, nil
}

// friendFold accumulates one friend's numbers across the match
// iteration. topLane is "first lane to reach the max count", so the
// tie-break follows match order rather than any lane ordering.
type friendFold struct {
	wins   int
	losses int

	laneCounts   map[models.Lane]int
	laneOrder    []models.Lane
	topLane      models.Lane
	topLaneCount int

	champions     map[string]*championFold
	championOrder []string
}

type championFold struct {
	wins  int
	games int
}

func newFriendFold() *friendFold {
	return &friendFold{
		laneCounts: make(map[models.Lane]int),
		champions:  make(map[string]*championFold),
	}
}

// add folds one match membership into the friend's totals
func (f *friendFold) add(match *models.MatchStats, member models.MatchStatsMember) {
	won := match.TeamWon(member.Team)
	if won {
		f.wins++
	} else {
		f.losses++
	}

	if member.Lane != models.LaneUnknown {
		if _, seen := f.laneCounts[member.Lane]; !seen {
			f.laneOrder = append(f.laneOrder, member.Lane)
		}
		f.laneCounts[member.Lane]++
		if f.laneCounts[member.Lane] > f.topLaneCount {
			f.topLaneCount = f.laneCounts[member.Lane]
			f.topLane = member.Lane
		}
	}

	championName := "Unknown"
	if member.Champion != nil && *member.Champion != "" {
		championName = *member.Champion
	}
	champion, seen := f.champions[championName]
	if !seen {
		champion = &championFold{}
		f.champions[championName] = champion
		f.championOrder = append(f.championOrder, championName)
	}
	champion.games++
	if won {
		champion.wins++
	}
}

func (f *friendFold) total() int {
	return f.wins + f.losses
}

func (f *friendFold) summary(friendID, displayName string) *FriendStats {
	stats := &FriendStats{
		FriendID:     friendID,
		DisplayName:  displayName,
		TotalMatches: f.total(),
		Wins:         f.wins,
		Losses:       f.losses,
	}
	if f.total() > 0 {
		rate := round3(float64(f.wins) / float64(f.total()))
		stats.WinRate = &rate
	}
	if f.topLaneCount > 0 {
		lane := f.topLane
		stats.TopLane = &lane
	}
	return stats
}

// GetStatsOverview folds every confirmed match into per-friend
// summaries, sorted by win rate, then match count, then display name
func (s *service) GetStatsOverview(ctx context.Context, input *GetStatsOverviewInput) (*GetStatsOverviewOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	friends, err := s.friendRepo.ListFriends(ctx, &friendRepo.ListFriendsInput{
		IncludeArchived: input.IncludeArchived,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.matchRepo.GetConfirmedMatchStats(ctx, &matchRepo.GetConfirmedMatchStatsInput{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	folds := make(map[string]*friendFold, len(friends.Friends))
	for _, friend := range friends.Friends {
		folds[friend.ID] = newFriendFold()
	}

	for _, match := range result.Matches {
		for _, member := range match.Members {
			fold, tracked := folds[member.FriendID]
			if !tracked {
				continue
			}
			fold.add(match, member)
		}
	}

	entries := make([]*FriendStats, 0, len(friends.Friends))
	for _, friend := range friends.Friends {
		entries = append(entries, folds[friend.ID].summary(friend.ID, friend.DisplayName))
	}

	sort.Slice(entries, func(i, j int) bool {
		left, right := sortRate(entries[i]), sortRate(entries[j])
		if left != right {
			return left > right
		}
		if entries[i].TotalMatches != entries[j].TotalMatches {
			return entries[i].TotalMatches > entries[j].TotalMatches
		}
		return s.collator.CompareString(entries[i].DisplayName, entries[j].DisplayName) < 0
	})

	return &GetStatsOverviewOutput{Entries: entries}, nil
}

// GetStatsDetail folds one friend's confirmed matches into a summary,
// lane distribution and top-ten champion records
func (s *service) GetStatsDetail(ctx context.Context, input *GetStatsDetailInput) (*GetStatsDetailOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	friends, err := s.friendRepo.ListFriends(ctx, &friendRepo.ListFriendsInput{
		IncludeArchived: input.IncludeArchived,
	})
	if err != nil {
		return nil, err
	}

	var target *models.Friend
	for _, friend := range friends.Friends {
		if friend.ID == input.FriendID {
			target = friend
			break
		}
	}
	if target == nil {
		return nil, apperr.NotFound.WithMessagef("friend %s not found", input.FriendID)
	}

	result, err := s.matchRepo.GetConfirmedMatchStats(ctx, &matchRepo.GetConfirmedMatchStatsInput{
		FriendID:  input.FriendID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	fold := newFriendFold()
	for _, match := range result.Matches {
		for _, member := range match.Members {
			if member.FriendID == input.FriendID {
				fold.add(match, member)
			}
		}
	}

	lanes := make([]LaneCount, 0, len(fold.laneOrder))
	for _, lane := range fold.laneOrder {
		lanes = append(lanes, LaneCount{Lane: lane, PlayCount: fold.laneCounts[lane]})
	}
	sort.SliceStable(lanes, func(i, j int) bool {
		return lanes[i].PlayCount > lanes[j].PlayCount
	})

	champions := make([]ChampionStats, 0, len(fold.championOrder))
	for _, name := range fold.championOrder {
		champion := fold.champions[name]
		winRate := 0.0
		if champion.games > 0 {
			winRate = round3(float64(champion.wins) / float64(champion.games))
		}
		champions = append(champions, ChampionStats{
			Champion: name,
			Wins:     champion.wins,
			Games:    champion.games,
			WinRate:  winRate,
		})
	}
	sort.SliceStable(champions, func(i, j int) bool {
		return champions[i].Games > champions[j].Games
	})
	if len(champions) > 10 {
		champions = champions[:10]
	}

	return &GetStatsDetailOutput{
		Summary:          fold.summary(target.ID, target.DisplayName),
		LaneDistribution: lanes,
		TopChampions:     champions,
	}, nil
}

// sortRate treats a missing win rate as -1 so friends with no matches
// sort last
func sortRate(stats *FriendStats) float64 {
	if stats.WinRate == nil {
		return -1
	}
	return *stats.WinRate
}

// round3 rounds half away from zero to three decimal places
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
