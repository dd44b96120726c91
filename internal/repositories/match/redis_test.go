package match

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gamenighthq/gamenight/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) testMatch(id string, matchNo int, createdAt time.Time) *models.Match {
	champion := "Ahri"
	return &models.Match{
		Entity: models.Entity{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		SessionID:  "test-session-id",
		MatchNo:    matchNo,
		Status:     models.MatchStatusDraft,
		WinnerSide: models.SideUnknown,
		TeamASide:  models.SideUnknown,
		Members: []*models.MatchTeamMember{
			{ID: "member-1", MatchID: id, FriendID: "friend-1", Team: models.TeamA, Lane: models.LaneMid, Champion: &champion},
			{ID: "member-2", MatchID: id, FriendID: "friend-2", Team: models.TeamB, Lane: models.LaneUnknown},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetMatch() {
	match := s.testMatch("test-match-id", 1, s.testNow)

	err := s.repo.SaveMatch(context.Background(), &SaveMatchInput{Match: match})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetMatch(context.Background(), &GetMatchInput{MatchID: "test-match-id"})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-match-id", retrieved.ID)
	s.Equal("test-session-id", retrieved.SessionID)
	s.Equal(1, retrieved.MatchNo)
	s.Equal(models.MatchStatusDraft, retrieved.Status)
	s.False(retrieved.IsConfirmed)
	s.Require().Len(retrieved.Members, 2)
	s.Require().NotNil(retrieved.Members[0].Champion)
	s.Equal("Ahri", *retrieved.Members[0].Champion)
	s.Nil(retrieved.Members[1].Champion)
}

func (s *RedisRepositoryTestSuite) TestGetMatch_NotFound() {
	retrieved, err := s.repo.GetMatch(context.Background(), &GetMatchInput{MatchID: "missing"})

	s.Require().Error(err)
	s.Nil(retrieved)
	s.ErrorIs(err, ErrMatchNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetNextMatchNo_Monotonic() {
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		matchNo, err := s.repo.GetNextMatchNo(ctx, &GetNextMatchNoInput{SessionID: "session-a"})
		s.Require().NoError(err)
		s.Equal(want, matchNo)
	}

	// Counters are per session
	matchNo, err := s.repo.GetNextMatchNo(ctx, &GetNextMatchNoInput{SessionID: "session-b"})
	s.Require().NoError(err)
	s.Equal(1, matchNo)
}

func (s *RedisRepositoryTestSuite) TestGetNextMatchNo_NeverReusedAfterDelete() {
	ctx := context.Background()

	matchNo, err := s.repo.GetNextMatchNo(ctx, &GetNextMatchNoInput{SessionID: "test-session-id"})
	s.Require().NoError(err)
	s.Equal(1, matchNo)

	match := s.testMatch("test-match-id", matchNo, s.testNow)
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: match}))
	s.Require().NoError(s.repo.DeleteMatch(ctx, &DeleteMatchInput{MatchID: "test-match-id"}))

	// Deleting a match must not give its number back
	matchNo, err = s.repo.GetNextMatchNo(ctx, &GetNextMatchNoInput{SessionID: "test-session-id"})
	s.Require().NoError(err)
	s.Equal(2, matchNo)
}

func (s *RedisRepositoryTestSuite) TestGetMatchesBySession_OrderedByMatchNo() {
	ctx := context.Background()

	second := s.testMatch("match-2", 2, s.testNow.Add(time.Hour))
	first := s.testMatch("match-1", 1, s.testNow)

	// Saved out of order on purpose
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: second}))
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: first}))

	output, err := s.repo.GetMatchesBySession(ctx, &GetMatchesBySessionInput{SessionID: "test-session-id"})
	s.Require().NoError(err)
	s.Require().Len(output.Matches, 2)
	s.Equal(1, output.Matches[0].MatchNo)
	s.Equal(2, output.Matches[1].MatchNo)
}

func (s *RedisRepositoryTestSuite) TestDeleteBySession_ResetsCounter() {
	ctx := context.Background()

	_, err := s.repo.GetNextMatchNo(ctx, &GetNextMatchNoInput{SessionID: "test-session-id"})
	s.Require().NoError(err)

	match := s.testMatch("test-match-id", 1, s.testNow)
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: match}))

	s.Require().NoError(s.repo.DeleteBySession(ctx, &DeleteBySessionInput{SessionID: "test-session-id"}))

	_, err = s.repo.GetMatch(ctx, &GetMatchInput{MatchID: "test-match-id"})
	s.ErrorIs(err, ErrMatchNotFound)

	// The counter goes with the session
	matchNo, err := s.repo.GetNextMatchNo(ctx, &GetNextMatchNoInput{SessionID: "test-session-id"})
	s.Require().NoError(err)
	s.Equal(1, matchNo)
}

func (s *RedisRepositoryTestSuite) TestGetConfirmedMatchStats_SkipsUnconfirmed() {
	ctx := context.Background()

	confirmed := s.testMatch("match-confirmed", 1, s.testNow)
	confirmed.ConfirmResult(models.SideA, models.SideA, s.testNow)
	draft := s.testMatch("match-draft", 2, s.testNow.Add(time.Minute))

	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: confirmed}))
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: draft}))

	output, err := s.repo.GetConfirmedMatchStats(ctx, &GetConfirmedMatchStatsInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Matches, 1)
	s.Equal("match-confirmed", output.Matches[0].MatchID)
	s.Equal(models.SideA, output.Matches[0].WinnerSide)
	s.Require().Len(output.Matches[0].Members, 2)
}

func (s *RedisRepositoryTestSuite) TestGetConfirmedMatchStats_FiltersByFriend() {
	ctx := context.Background()

	match := s.testMatch("test-match-id", 1, s.testNow)
	match.ConfirmResult(models.SideA, models.SideB, s.testNow)
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: match}))

	output, err := s.repo.GetConfirmedMatchStats(ctx, &GetConfirmedMatchStatsInput{FriendID: "friend-1"})
	s.Require().NoError(err)
	s.Len(output.Matches, 1)

	output, err = s.repo.GetConfirmedMatchStats(ctx, &GetConfirmedMatchStatsInput{FriendID: "stranger"})
	s.Require().NoError(err)
	s.Empty(output.Matches)
}

func (s *RedisRepositoryTestSuite) TestGetConfirmedMatchStats_FiltersByDateRange() {
	ctx := context.Background()

	older := s.testMatch("match-old", 1, s.testNow.Add(-48*time.Hour))
	older.ConfirmResult(models.SideA, models.SideA, s.testNow)
	recent := s.testMatch("match-recent", 2, s.testNow)
	recent.ConfirmResult(models.SideB, models.SideA, s.testNow)

	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: older}))
	s.Require().NoError(s.repo.SaveMatch(ctx, &SaveMatchInput{Match: recent}))

	start := s.testNow.Add(-24 * time.Hour)
	output, err := s.repo.GetConfirmedMatchStats(ctx, &GetConfirmedMatchStatsInput{StartDate: &start})
	s.Require().NoError(err)
	s.Require().Len(output.Matches, 1)
	s.Equal("match-recent", output.Matches[0].MatchID)

	end := s.testNow.Add(-24 * time.Hour)
	output, err = s.repo.GetConfirmedMatchStats(ctx, &GetConfirmedMatchStatsInput{EndDate: &end})
	s.Require().NoError(err)
	s.Require().Len(output.Matches, 1)
	s.Equal("match-old", output.Matches[0].MatchID)
}
