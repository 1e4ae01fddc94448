// Package storagetest holds the behaviour every storage backend must share.
// Backend test suites embed Suite and assign Storage in their SetupTest.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/storage"
)

// Suite is the shared storage conformance suite
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var created = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

// Tournament returns a tournament fixture
func Tournament(code model.TournamentCode) *model.Tournament {
	return &model.Tournament{
		Code:       code,
		Name:       "Thursday Doubles",
		Courts:     4,
		Mode:       model.ModeRotating,
		MaxPlayers: 16,
		Divisions: []model.Division{
			{ID: "div-1", Name: "A", CourtStart: 1, CourtEnd: 2, Color: "#ff0000"},
		},
		Teams: []model.RegisteredTeam{
			{ID: "team-1", Name: "Smash", Players: model.Team{"p1", "p2"}},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// Roster returns a roster fixture with one waitlisted player, stored out of order
func Roster(code model.TournamentCode) []*model.Player {
	return []*model.Player{
		{ID: "p3", TournamentCode: code, Name: "Cara", IsPlaying: true, OrderNum: 2, CreatedAt: created},
		{ID: "p1", TournamentCode: code, Name: "Ann", IsPlaying: true, OrderNum: 0, DivisionID: "div-1", CreatedAt: created},
		{ID: "p2", TournamentCode: code, Name: "Ben", IsPlaying: true, OrderNum: 1, CreatedAt: created},
		{ID: "p4", TournamentCode: code, Name: "Dev", IsPlaying: true, WaitlistPosition: 1, OrderNum: 3, CreatedAt: created},
	}
}

// Schedule returns a one-round schedule fixture
func Schedule(code model.TournamentCode) *model.Schedule {
	return &model.Schedule{
		TournamentCode: code,
		Mode:           model.ModeRotating,
		GeneratedAt:    created,
		Rounds: []model.Round{
			{
				Number: 1,
				Matches: []model.Match{
					{ID: "m1", Court: 1, Team1: model.Team{"p1", "p2"}, Team2: model.Team{"p3", "p4"}, DivisionID: "div-1"},
				},
				Sitting: []model.PlayerID{"p5"},
			},
		},
	}
}

// Tournament tests

func (s *Suite) TestSaveAndGetTournament() {
	t := Tournament("ABC123")
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, t))

	got, err := s.Storage.GetTournament(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(t.Code, got.Code)
	s.Equal(t.Name, got.Name)
	s.Equal(t.Courts, got.Courts)
	s.Equal(t.Mode, got.Mode)
	s.Equal(t.Divisions, got.Divisions)
	s.Equal(t.Teams, got.Teams)
	s.True(t.CreatedAt.Equal(got.CreatedAt))
}

func (s *Suite) TestGetTournamentNotFound() {
	_, err := s.Storage.GetTournament(s.Ctx, "NOPE00")
	s.ErrorIs(err, model.ErrTournamentNotFound)
}

func (s *Suite) TestTournamentExists() {
	exists, err := s.Storage.TournamentExists(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, Tournament("ABC123")))

	exists, err = s.Storage.TournamentExists(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *Suite) TestSaveTournamentOverwrites() {
	t := Tournament("ABC123")
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, t))

	t.Courts = 6
	t.Divisions = nil
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, t))

	got, err := s.Storage.GetTournament(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(6, got.Courts)
	s.Empty(got.Divisions)
}

func (s *Suite) TestDeleteTournamentRemovesEverything() {
	s.Require().NoError(s.Storage.SaveTournamentWithRoster(s.Ctx, Tournament("ABC123"), Roster("ABC123")))
	s.Require().NoError(s.Storage.SaveSchedule(s.Ctx, Schedule("ABC123")))

	s.Require().NoError(s.Storage.DeleteTournament(s.Ctx, "ABC123"))

	_, err := s.Storage.GetTournament(s.Ctx, "ABC123")
	s.ErrorIs(err, model.ErrTournamentNotFound)
	_, err = s.Storage.GetSchedule(s.Ctx, "ABC123")
	s.ErrorIs(err, model.ErrScheduleNotFound)
	roster, err := s.Storage.GetRoster(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Empty(roster)
}

// Roster tests

func (s *Suite) TestSaveAndGetRosterOrdersBySignup() {
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, Tournament("ABC123")))
	s.Require().NoError(s.Storage.SaveRoster(s.Ctx, "ABC123", Roster("ABC123")))

	roster, err := s.Storage.GetRoster(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(roster, 4)

	ids := make([]model.PlayerID, len(roster))
	for i, p := range roster {
		ids[i] = p.ID
	}
	s.Equal([]model.PlayerID{"p1", "p2", "p3", "p4"}, ids)
	s.Equal("div-1", roster[0].DivisionID)
	s.Equal(1, roster[3].WaitlistPosition)
}

func (s *Suite) TestSaveRosterReplacesWholeRoster() {
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, Tournament("ABC123")))
	s.Require().NoError(s.Storage.SaveRoster(s.Ctx, "ABC123", Roster("ABC123")))

	smaller := Roster("ABC123")[:2]
	s.Require().NoError(s.Storage.SaveRoster(s.Ctx, "ABC123", smaller))

	roster, err := s.Storage.GetRoster(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(roster, 2)
}

func (s *Suite) TestGetRosterUnknownIsEmpty() {
	roster, err := s.Storage.GetRoster(s.Ctx, "NOPE00")
	s.Require().NoError(err)
	s.Empty(roster)
}

func (s *Suite) TestSaveTournamentWithRoster() {
	t := Tournament("ABC123")
	t.MaxPlayers = 20
	s.Require().NoError(s.Storage.SaveTournamentWithRoster(s.Ctx, t, Roster("ABC123")))

	got, err := s.Storage.GetTournament(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(20, got.MaxPlayers)

	roster, err := s.Storage.GetRoster(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(roster, 4)
}

func (s *Suite) TestRostersAreIsolatedPerTournament() {
	s.Require().NoError(s.Storage.SaveTournamentWithRoster(s.Ctx, Tournament("AAA111"), Roster("AAA111")))
	s.Require().NoError(s.Storage.SaveTournamentWithRoster(s.Ctx, Tournament("BBB222"), Roster("BBB222")[:1]))

	a, err := s.Storage.GetRoster(s.Ctx, "AAA111")
	s.Require().NoError(err)
	b, err := s.Storage.GetRoster(s.Ctx, "BBB222")
	s.Require().NoError(err)
	s.Len(a, 4)
	s.Len(b, 1)
}

// Schedule tests

func (s *Suite) TestSaveAndGetSchedule() {
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, Tournament("ABC123")))
	sched := Schedule("ABC123")
	s.Require().NoError(s.Storage.SaveSchedule(s.Ctx, sched))

	got, err := s.Storage.GetSchedule(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(sched.Mode, got.Mode)
	s.Equal(sched.Rounds, got.Rounds)
	s.True(sched.GeneratedAt.Equal(got.GeneratedAt))
}

func (s *Suite) TestGetScheduleNotFound() {
	_, err := s.Storage.GetSchedule(s.Ctx, "NOPE00")
	s.ErrorIs(err, model.ErrScheduleNotFound)
}

func (s *Suite) TestDeleteSchedule() {
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, Tournament("ABC123")))
	s.Require().NoError(s.Storage.SaveSchedule(s.Ctx, Schedule("ABC123")))

	s.Require().NoError(s.Storage.DeleteSchedule(s.Ctx, "ABC123"))

	_, err := s.Storage.GetSchedule(s.Ctx, "ABC123")
	s.ErrorIs(err, model.ErrScheduleNotFound)
}

func (s *Suite) TestSaveTournamentWithSchedule() {
	t := Tournament("ABC123")
	t.ScheduleGenerated = true
	sched := Schedule("ABC123")
	s.Require().NoError(s.Storage.SaveTournamentWithSchedule(s.Ctx, t, sched))

	got, err := s.Storage.GetTournament(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.True(got.ScheduleGenerated)

	stored, err := s.Storage.GetSchedule(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(sched.Rounds, stored.Rounds)
}

func (s *Suite) TestScheduleKeepsScores() {
	sched := Schedule("ABC123")
	sched.Rounds[0].Matches[0].Score = &model.MatchScore{Team1: 21, Team2: 18}
	sched.Rounds[0].Matches[0].Completed = true
	s.Require().NoError(s.Storage.SaveTournamentWithSchedule(s.Ctx, Tournament("ABC123"), sched))

	got, err := s.Storage.GetSchedule(s.Ctx, "ABC123")
	s.Require().NoError(err)
	match := got.FindMatch("m1")
	s.Require().NotNil(match)
	s.True(match.Completed)
	s.Equal(&model.MatchScore{Team1: 21, Team2: 18}, match.Score)
}

func (s *Suite) TestTournamentKeepsStarted() {
	t := Tournament("ABC123")
	t.Started = true
	s.Require().NoError(s.Storage.SaveTournament(s.Ctx, t))

	got, err := s.Storage.GetTournament(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.True(got.Started)
}
