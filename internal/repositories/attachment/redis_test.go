package attachment

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestCountBySessionID_ZeroWhenMissing() {
	count, err := s.repo.CountBySessionID(context.Background(), &CountBySessionIDInput{SessionID: "session-1"})

	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *RedisRepositoryTestSuite) TestCountBySessionID_ReadsUploadCounter() {
	// The counter key is written by the upload pipeline, not this repo
	s.Require().NoError(s.mr.Set("session_attachments:session-1", "4"))

	count, err := s.repo.CountBySessionID(context.Background(), &CountBySessionIDInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(4, count)

	count, err = s.repo.CountBySessionIDForUpdate(context.Background(), &CountBySessionIDInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(4, count)
}

func (s *RedisRepositoryTestSuite) TestCountBySessionID_MalformedCounter() {
	s.Require().NoError(s.mr.Set("session_attachments:session-1", "not-a-number"))

	_, err := s.repo.CountBySessionID(context.Background(), &CountBySessionIDInput{SessionID: "session-1"})
	s.Require().Error(err)
}
