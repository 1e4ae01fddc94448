package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/doubles-roundrobin/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini  *miniredis.Miniredis
	redis *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TournamentTTL = time.Hour

	s.redis = NewWithClient(client, cfg)
	s.Storage = s.redis
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestTournamentRecordsHaveTTL() {
	s.Require().NoError(s.redis.SaveTournamentWithRoster(s.Ctx, storagetest.Tournament("ABC123"), storagetest.Roster("ABC123")))
	s.Require().NoError(s.redis.SaveSchedule(s.Ctx, storagetest.Schedule("ABC123")))

	s.Equal(time.Hour, s.mini.TTL(tournamentKey("ABC123")))
	s.Equal(time.Hour, s.mini.TTL(rosterKey("ABC123")))
	s.Equal(time.Hour, s.mini.TTL(scheduleKey("ABC123")))
}

func (s *StorageSuite) TestZeroTTLKeepsRecords() {
	s.redis.cfg.TournamentTTL = 0
	s.Require().NoError(s.redis.SaveTournamentWithRoster(s.Ctx, storagetest.Tournament("ABC123"), storagetest.Roster("ABC123")))

	s.Equal(time.Duration(0), s.mini.TTL(tournamentKey("ABC123")))
	s.Equal(time.Duration(0), s.mini.TTL(rosterKey("ABC123")))
}

func (s *StorageSuite) TestTournamentExpires() {
	s.Require().NoError(s.redis.SaveTournament(s.Ctx, storagetest.Tournament("ABC123")))

	s.mini.FastForward(2 * time.Hour)

	exists, err := s.redis.TournamentExists(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestRosterStoredAsHash() {
	s.Require().NoError(s.redis.SaveRoster(s.Ctx, "ABC123", storagetest.Roster("ABC123")))

	keys, err := s.mini.HKeys(rosterKey("ABC123"))
	s.Require().NoError(err)
	s.ElementsMatch([]string{"p1", "p2", "p3", "p4"}, keys)
}

func (s *StorageSuite) TestEmptyRosterClearsHash() {
	s.Require().NoError(s.redis.SaveRoster(s.Ctx, "ABC123", storagetest.Roster("ABC123")))
	s.Require().NoError(s.redis.SaveRoster(s.Ctx, "ABC123", nil))

	s.False(s.mini.Exists(rosterKey("ABC123")))
}
