package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/doubles-roundrobin/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	pg *Storage
}

// TestStorageSuite runs against a real database named by TEST_DATABASE_URL
func TestStorageSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupSuite() {
	cfg := DefaultConfig()
	cfg.DSN = os.Getenv("TEST_DATABASE_URL")

	store, err := New(cfg)
	s.Require().NoError(err)
	s.pg = store
	s.Storage = store
}

func (s *StorageSuite) TearDownSuite() {
	if s.pg != nil {
		_ = s.pg.Close()
	}
}

func (s *StorageSuite) SetupTest() {
	s.Ctx = context.Background()
	_, err := s.pg.db.ExecContext(s.Ctx, `TRUNCATE tournaments, players, schedules`)
	s.Require().NoError(err)
}

func (s *StorageSuite) TestFailedRosterWriteRollsBack() {
	s.Require().NoError(s.pg.SaveTournamentWithRoster(s.Ctx, storagetest.Tournament("ABC123"), storagetest.Roster("ABC123")))

	// Duplicate IDs violate the primary key part way through the insert
	dup := storagetest.Roster("ABC123")
	dup[1].ID = dup[0].ID
	s.Error(s.pg.SaveRoster(s.Ctx, "ABC123", dup))

	roster, err := s.pg.GetRoster(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(roster, 4)
}
