package stats

import (
	"context"
	"testing"
	"time"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"github.com/gamenighthq/gamenight/internal/models"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
	friendMocks "github.com/gamenighthq/gamenight/internal/repositories/friend/mocks"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	matchMocks "github.com/gamenighthq/gamenight/internal/repositories/match/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockFriendRepo *friendMocks.MockRepository
	mockMatchRepo  *matchMocks.MockRepository
	statsService   Service
	ctx            context.Context
}

func (s *StatsServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockFriendRepo = friendMocks.NewMockRepository(s.mockCtrl)
	s.mockMatchRepo = matchMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := New(&Config{
		FriendRepo: s.mockFriendRepo,
		MatchRepo:  s.mockMatchRepo,
	})
	s.Require().NoError(err)
	s.statsService = svc
}

func (s *StatsServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func testFriend(id, displayName string) *models.Friend {
	return &models.Friend{
		Entity:      models.Entity{ID: id},
		DisplayName: displayName,
	}
}

// wonMatch builds a confirmed match the given friend won
func wonMatch(matchID, friendID string, lane models.Lane, champion *string) *models.MatchStats {
	return &models.MatchStats{
		MatchID:    matchID,
		SessionID:  "session-1",
		WinnerSide: models.SideA,
		TeamASide:  models.SideA,
		Members: []models.MatchStatsMember{
			{FriendID: friendID, Team: models.TeamA, Lane: lane, Champion: champion},
		},
	}
}

// lostMatch builds a confirmed match the given friend lost
func lostMatch(matchID, friendID string, lane models.Lane, champion *string) *models.MatchStats {
	return &models.MatchStats{
		MatchID:    matchID,
		SessionID:  "session-1",
		WinnerSide: models.SideA,
		TeamASide:  models.SideB,
		Members: []models.MatchStatsMember{
			{FriendID: friendID, Team: models.TeamA, Lane: lane, Champion: champion},
		},
	}
}

func (s *StatsServiceTestSuite) expectFriends(includeArchived bool, friends ...*models.Friend) {
	s.mockFriendRepo.EXPECT().
		ListFriends(gomock.Any(), &friendRepo.ListFriendsInput{IncludeArchived: includeArchived}).
		Return(&friendRepo.ListFriendsOutput{Friends: friends}, nil)
}

func (s *StatsServiceTestSuite) TestGetStatsOverview_ComputesWinRate() {
	s.expectFriends(false, testFriend("friend-1", "ana"))
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), &matchRepo.GetConfirmedMatchStatsInput{}).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{Matches: []*models.MatchStats{
			wonMatch("m1", "friend-1", models.LaneMid, nil),
			wonMatch("m2", "friend-1", models.LaneMid, nil),
			wonMatch("m3", "friend-1", models.LaneMid, nil),
			lostMatch("m4", "friend-1", models.LaneMid, nil),
		}}, nil)

	output, err := s.statsService.GetStatsOverview(s.ctx, &GetStatsOverviewInput{})

	s.Require().NoError(err)
	s.Require().Len(output.Entries, 1)

	entry := output.Entries[0]
	s.Equal(4, entry.TotalMatches)
	s.Equal(3, entry.Wins)
	s.Equal(1, entry.Losses)
	s.Require().NotNil(entry.WinRate)
	s.Equal(0.75, *entry.WinRate)
	s.Require().NotNil(entry.TopLane)
	s.Equal(models.LaneMid, *entry.TopLane)
}

func (s *StatsServiceTestSuite) TestGetStatsOverview_SortsEntries() {
	// winRate desc, then totalMatches desc, then display name; friends
	// with no matches have no win rate and sort last
	s.expectFriends(false,
		testFriend("idle-B", "Ben"),
		testFriend("low", "carol"),
		testFriend("high", "dan"),
		testFriend("idle-a", "ana"),
	)
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), gomock.Any()).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{Matches: []*models.MatchStats{
			wonMatch("m1", "high", models.LaneUnknown, nil),
			wonMatch("m2", "low", models.LaneUnknown, nil),
			lostMatch("m3", "low", models.LaneUnknown, nil),
		}}, nil)

	output, err := s.statsService.GetStatsOverview(s.ctx, &GetStatsOverviewInput{})

	s.Require().NoError(err)
	s.Require().Len(output.Entries, 4)
	s.Equal("high", output.Entries[0].FriendID)
	s.Equal("low", output.Entries[1].FriendID)

	// byte order would put "Ben" before "ana"; collation does not
	s.Equal("idle-a", output.Entries[2].FriendID)
	s.Equal("idle-B", output.Entries[3].FriendID)
	s.Nil(output.Entries[2].WinRate)
	s.Nil(output.Entries[2].TopLane)
}

func (s *StatsServiceTestSuite) TestGetStatsOverview_TopLaneFirstToReachMax() {
	s.expectFriends(false, testFriend("friend-1", "ana"))
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), gomock.Any()).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{Matches: []*models.MatchStats{
			wonMatch("m1", "friend-1", models.LaneMid, nil),
			wonMatch("m2", "friend-1", models.LaneTop, nil),
			wonMatch("m3", "friend-1", models.LaneTop, nil),
			wonMatch("m4", "friend-1", models.LaneMid, nil),
		}}, nil)

	output, err := s.statsService.GetStatsOverview(s.ctx, &GetStatsOverviewInput{})

	s.Require().NoError(err)
	// MID and TOP both end at two plays; TOP reached two first
	s.Require().NotNil(output.Entries[0].TopLane)
	s.Equal(models.LaneTop, *output.Entries[0].TopLane)
}

func (s *StatsServiceTestSuite) TestGetStatsOverview_UnknownLaneNeverTops() {
	s.expectFriends(false, testFriend("friend-1", "ana"))
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), gomock.Any()).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{Matches: []*models.MatchStats{
			wonMatch("m1", "friend-1", models.LaneUnknown, nil),
			lostMatch("m2", "friend-1", models.LaneUnknown, nil),
		}}, nil)

	output, err := s.statsService.GetStatsOverview(s.ctx, &GetStatsOverviewInput{})

	s.Require().NoError(err)
	s.Equal(2, output.Entries[0].TotalMatches)
	s.Nil(output.Entries[0].TopLane)
}

func (s *StatsServiceTestSuite) TestGetStatsOverview_PassesDateRange() {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	s.expectFriends(true)
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), &matchRepo.GetConfirmedMatchStatsInput{
			StartDate: &start,
			EndDate:   &end,
		}).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{}, nil)

	_, err := s.statsService.GetStatsOverview(s.ctx, &GetStatsOverviewInput{
		IncludeArchived: true,
		StartDate:       &start,
		EndDate:         &end,
	})

	s.Require().NoError(err)
}

func (s *StatsServiceTestSuite) TestGetStatsDetail_ChampionBreakdown() {
	ahri := "Ahri"
	zed := "Zed"

	s.expectFriends(false, testFriend("friend-1", "ana"))
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), &matchRepo.GetConfirmedMatchStatsInput{FriendID: "friend-1"}).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{Matches: []*models.MatchStats{
			wonMatch("m1", "friend-1", models.LaneMid, &ahri),
			wonMatch("m2", "friend-1", models.LaneMid, &ahri),
			lostMatch("m3", "friend-1", models.LaneMid, &ahri),
			wonMatch("m4", "friend-1", models.LaneTop, &zed),
			lostMatch("m5", "friend-1", models.LaneSupport, nil),
		}}, nil)

	output, err := s.statsService.GetStatsDetail(s.ctx, &GetStatsDetailInput{FriendID: "friend-1"})

	s.Require().NoError(err)
	s.Equal(5, output.Summary.TotalMatches)
	s.Equal(3, output.Summary.Wins)
	s.Require().NotNil(output.Summary.WinRate)
	s.Equal(0.6, *output.Summary.WinRate)

	s.Require().Len(output.LaneDistribution, 3)
	s.Equal(models.LaneMid, output.LaneDistribution[0].Lane)
	s.Equal(3, output.LaneDistribution[0].PlayCount)

	s.Require().Len(output.TopChampions, 3)
	s.Equal("Ahri", output.TopChampions[0].Champion)
	s.Equal(3, output.TopChampions[0].Games)
	s.Equal(2, output.TopChampions[0].Wins)
	s.Equal(0.667, output.TopChampions[0].WinRate)
	s.Equal("Zed", output.TopChampions[1].Champion)
	s.Equal("Unknown", output.TopChampions[2].Champion)
}

func (s *StatsServiceTestSuite) TestGetStatsDetail_CapsChampionsAtTen() {
	matches := make([]*models.MatchStats, 0, 12)
	champions := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10", "c11", "c12"}
	for i := range champions {
		matches = append(matches, wonMatch("m"+champions[i], "friend-1", models.LaneMid, &champions[i]))
	}

	s.expectFriends(false, testFriend("friend-1", "ana"))
	s.mockMatchRepo.EXPECT().
		GetConfirmedMatchStats(gomock.Any(), gomock.Any()).
		Return(&matchRepo.GetConfirmedMatchStatsOutput{Matches: matches}, nil)

	output, err := s.statsService.GetStatsDetail(s.ctx, &GetStatsDetailInput{FriendID: "friend-1"})

	s.Require().NoError(err)
	s.Len(output.TopChampions, 10)
}

func (s *StatsServiceTestSuite) TestGetStatsDetail_FriendNotFound() {
	s.expectFriends(false, testFriend("someone-else", "ben"))

	output, err := s.statsService.GetStatsDetail(s.ctx, &GetStatsDetailInput{FriendID: "friend-1"})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.NotFound)
}
