package factory

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
	"github.com/mcoot/doubles-roundrobin/internal/services/waitlist"
	boltstorage "github.com/mcoot/doubles-roundrobin/internal/storage/bolt"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: signups overflow to the waitlist, a dropout promotes, and the
// schedule only covers active players
func (s *IntegrationSuite) TestSignupWaitlistScheduleFlow() {
	s.app.MockRandom.QueueString("CLUB01")
	ctrl := s.app.TournamentController

	// Step 1: Create a tournament with room for 8
	t, err := ctrl.CreateTournament(s.ctx, tournament.CreateParams{Name: "Club Night", Courts: 2, MaxPlayers: 8})
	s.Require().NoError(err)
	s.Equal(model.TournamentCode("CLUB01"), t.Code)

	// Step 2: Ten people sign up
	var players []*model.Player
	for i := 1; i <= 10; i++ {
		p, err := ctrl.AddPlayer(s.ctx, t.Code, fmt.Sprintf("Player %d", i))
		s.Require().NoError(err)
		players = append(players, p)
	}
	s.Equal(1, players[8].WaitlistPosition)
	s.Equal(2, players[9].WaitlistPosition)

	// Step 3: An active player drops out
	change, err := ctrl.RemovePlayer(s.ctx, t.Code, players[2].ID)
	s.Require().NoError(err)
	s.Require().NotNil(change.Promoted)
	s.Equal(players[8].ID, change.Promoted.ID)

	roster, err := ctrl.GetRoster(s.ctx, t.Code)
	s.Require().NoError(err)
	s.Equal(8, waitlist.ActiveCount(roster))
	s.Require().Len(waitlist.Waitlisted(roster), 1)
	s.Equal(1, waitlist.Waitlisted(roster)[0].WaitlistPosition)

	// Step 4: Check the suggestion, then generate
	est, err := ctrl.SuggestRounds(s.ctx, t.Code)
	s.Require().NoError(err)
	s.Equal(10, est.Rounds)

	schedule, err := ctrl.GenerateSchedule(s.ctx, t.Code, 0)
	s.Require().NoError(err)
	s.LessOrEqual(len(schedule.Rounds), 15)

	for _, round := range schedule.Rounds {
		s.Len(round.Matches, 2)
		s.Empty(round.Sitting)
		for _, m := range round.Matches {
			for _, id := range m.Players() {
				s.NotEqual(players[2].ID, id)
				s.NotEqual(players[9].ID, id)
			}
		}
	}
}

// Test: the same flow works end to end against the bolt backend
func (s *IntegrationSuite) TestBoltBackedApp() {
	app, err := New(Config{
		StorageType: StorageTypeBolt,
		BoltConfig:  &boltstorage.Config{Path: filepath.Join(s.T().TempDir(), "app.db")},
	})
	s.Require().NoError(err)
	defer app.Close()

	ctrl := app.TournamentController
	t, err := ctrl.CreateTournament(s.ctx, tournament.CreateParams{Courts: 1, Mode: model.ModeFixed})
	s.Require().NoError(err)
	s.Len(string(t.Code), tournament.CodeLength)

	for i := 1; i <= 6; i++ {
		_, err := ctrl.AddPlayer(s.ctx, t.Code, fmt.Sprintf("Player %d", i))
		s.Require().NoError(err)
	}

	schedule, err := ctrl.GenerateSchedule(s.ctx, t.Code, 0)
	s.Require().NoError(err)
	s.Len(schedule.Rounds, 3)

	stored, err := ctrl.GetSchedule(s.ctx, t.Code)
	s.Require().NoError(err)
	s.Equal(schedule.Rounds, stored.Rounds)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "s3"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}
