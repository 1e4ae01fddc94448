package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/doubles-roundrobin/internal/api"
	"github.com/mcoot/doubles-roundrobin/internal/api/response"
	"github.com/mcoot/doubles-roundrobin/internal/factory"
	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
	"github.com/mcoot/doubles-roundrobin/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	server    *httptest.Server
	app       *factory.TestApp
	stateFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:               testutil.NopLogger(),
		TournamentController: s.app.TournamentController,
		Events:               s.app.Events,
	}))
	s.stateFile = filepath.Join(s.T().TempDir(), "tournament")
	s.T().Setenv("RRDOUBLES_TOURNAMENT", "")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI against the test server with JSON output
func (s *CLISuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", s.server.URL, "--state-file", s.stateFile, "-o", "json"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decodeOutput[T any](s *CLISuite, out string) T {
	var v T
	s.Require().NoError(json.Unmarshal([]byte(out), &v), out)
	return v
}

func (s *CLISuite) TestHealth() {
	out, err := s.run("health")
	s.Require().NoError(err)
	s.Equal("ok", decodeOutput[HealthResult](s, out).Status)
}

func (s *CLISuite) TestCreateRemembersTournament() {
	s.app.MockRandom.QueueString("CLI123")

	out, err := s.run("tournament", "create", "--courts", "2", "--max-players", "4", "--name", "Club Night")
	s.Require().NoError(err)
	s.Equal("CLI123", decodeOutput[response.Tournament](s, out).Code)

	data, err := os.ReadFile(s.stateFile)
	s.Require().NoError(err)
	s.Equal("CLI123", string(data))

	out, err = s.run("tournament", "get")
	s.Require().NoError(err)
	s.Equal("Club Night", decodeOutput[response.Tournament](s, out).Name)
}

func (s *CLISuite) TestUseIsCaseInsensitive() {
	s.app.MockRandom.QueueString("USE123")
	_, err := s.run("tournament", "create")
	s.Require().NoError(err)
	s.Require().NoError(os.Remove(s.stateFile))

	_, err = s.run("tournament", "use", "use123")
	s.Require().NoError(err)

	data, err := os.ReadFile(s.stateFile)
	s.Require().NoError(err)
	s.Equal("USE123", string(data))
}

func (s *CLISuite) TestCommandsNeedTournament() {
	_, err := s.run("player", "list")
	s.ErrorIs(err, errNoTournament)
}

func (s *CLISuite) TestRosterAndSchedule() {
	s.app.MockRandom.QueueString("RUN123")
	_, err := s.run("tournament", "create", "--courts", "1", "--max-players", "4")
	s.Require().NoError(err)

	_, err = s.run("player", "add", "Ann", "Bob", "Cat", "Dan", "Eve")
	s.Require().NoError(err)

	out, err := s.run("player", "list")
	s.Require().NoError(err)
	roster := decodeOutput[response.Roster](s, out)
	s.Equal(4, roster.Active)
	s.Equal(1, roster.Waitlisted)

	out, err = s.run("player", "sit", roster.Players[0].ID)
	s.Require().NoError(err)
	change := decodeOutput[response.PlayerChange](s, out)
	s.Require().NotNil(change.Promoted)
	s.Equal("Eve", change.Promoted.Name)

	out, err = s.run("schedule", "generate", "--rounds", "3")
	s.Require().NoError(err)
	schedule := decodeOutput[response.Schedule](s, out)
	s.Len(schedule.Rounds, 3)

	_, err = s.run("waitlist", "approve", "--all")
	s.Error(err)
}

func (s *CLISuite) TestScoresAndRankings() {
	s.app.MockRandom.QueueString("SCO123")
	_, err := s.run("tournament", "create", "--courts", "1")
	s.Require().NoError(err)
	_, err = s.run("player", "add", "Ann", "Bob", "Cat", "Dan")
	s.Require().NoError(err)

	out, err := s.run("schedule", "generate")
	s.Require().NoError(err)
	match := decodeOutput[response.Schedule](s, out).Rounds[0].Matches[0]

	out, err = s.run("schedule", "score", match.ID, "21", "16")
	s.Require().NoError(err)
	scored := decodeOutput[response.Match](s, out)
	s.True(scored.Completed)
	s.Equal("21-16", matchResult(scored))

	_, err = s.run("schedule", "score", match.ID, "21", "many")
	s.Error(err)

	out, err = s.run("rankings")
	s.Require().NoError(err)
	table := decodeOutput[response.Rankings](s, out).Rankings
	s.Require().Len(table, 4)
	s.Equal(1, table[0].Wins)
	s.Equal(5, table[0].PointDifferential)
}

func (s *CLISuite) TestStartedLocksSignups() {
	s.app.MockRandom.QueueString("STA123")
	_, err := s.run("tournament", "create", "--courts", "1")
	s.Require().NoError(err)

	out, err := s.run("tournament", "update", "--started")
	s.Require().NoError(err)
	s.True(decodeOutput[response.Tournament](s, out).Started)

	_, err = s.run("player", "add", "Late")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("TOURNAMENT_STARTED", apiErr.Code)
}

func (s *CLISuite) TestAssignMany() {
	s.app.MockRandom.QueueString("DIV123")
	_, err := s.run("tournament", "create", "--courts", "2")
	s.Require().NoError(err)
	div, err := s.app.TournamentController.AddDivision(context.Background(), "DIV123",
		tournament.DivisionParams{Name: "Open", CourtStart: 1, CourtEnd: 2})
	s.Require().NoError(err)
	_, err = s.run("player", "add", "Ann", "Bob")
	s.Require().NoError(err)

	out, err := s.run("player", "list")
	s.Require().NoError(err)
	roster := decodeOutput[response.Roster](s, out)

	out, err = s.run("player", "assign-many",
		roster.Players[0].ID+"="+div.ID, roster.Players[1].ID+"="+div.ID)
	s.Require().NoError(err)
	s.Equal(2, decodeOutput[response.Assigned](s, out).Assigned)

	_, err = s.run("player", "assign-many", "no-separator")
	s.Error(err)
}

func (s *CLISuite) TestAPIErrorsSurface() {
	s.T().Setenv("RRDOUBLES_TOURNAMENT", "nope00")
	_, err := s.run("tournament", "get")

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(404, apiErr.Status)
	s.Equal("TOURNAMENT_NOT_FOUND", apiErr.Code)
}

func (s *CLISuite) TestWatchPrintsChanges() {
	s.app.MockRandom.QueueString("WAT123")
	_, err := s.run("tournament", "create", "--courts", "1")
	s.Require().NoError(err)

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := s.run("watch", "--count", "2")
		done <- result{out, err}
	}()

	// Wait for the stream to connect before changing anything
	s.Require().Eventually(func() bool {
		hub := s.app.Events.GetHub("WAT123")
		return hub != nil && hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	_, err = s.app.TournamentController.AddPlayer(ctx, "WAT123", "Ann")
	s.Require().NoError(err)
	courts := 2
	_, err = s.app.TournamentController.UpdateSettings(ctx, "WAT123", tournament.SettingsUpdate{Courts: &courts})
	s.Require().NoError(err)

	var res result
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("watch did not exit")
	}
	s.Require().NoError(res.err)

	dec := json.NewDecoder(strings.NewReader(res.out))
	var events []WatchEvent
	for dec.More() {
		var e WatchEvent
		s.Require().NoError(dec.Decode(&e))
		events = append(events, e)
	}
	s.Equal([]WatchEvent{
		{Type: "roster", Code: "WAT123"},
		{Type: "tournament", Code: "WAT123"},
	}, events)
}

func (s *CLISuite) TestWatchUnknownTournament() {
	_, err := s.run("--tournament", "NOPE99", "watch")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("TOURNAMENT_NOT_FOUND", apiErr.Code)
}

func (s *CLISuite) TestPlanOffline() {
	out, err := s.run("plan", "rotating", "--players", "8", "--courts", "2", "--seed", "7", "--rounds", "10")
	s.Require().NoError(err)

	schedule := decodeOutput[response.Schedule](s, out)
	s.Len(schedule.Rounds, 10)
	for _, r := range schedule.Rounds {
		s.Len(r.Matches, 2)
	}
}

func (s *CLISuite) TestEstimateOffline() {
	out, err := s.run("estimate", "--players", "6", "--courts", "1", "--mode", "fixed")
	s.Require().NoError(err)
	s.Equal(3, decodeOutput[response.Estimate](s, out).Rounds)
}

func TestPlanFixedWithTeams(t *testing.T) {
	opts := planOptions{
		mode:    model.ModeFixed,
		players: []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay"},
		courts:  1,
		seed:    3,
		teams:   []string{"Ann,Eve"},
	}

	s, err := opts.plan()
	require.NoError(t, err)
	require.Len(t, s.Rounds, 3)

	for _, r := range s.Rounds {
		for _, m := range r.Matches {
			for _, team := range []model.Team{m.Team1, m.Team2} {
				if team.Has("Ann") {
					assert.True(t, team.Has("Eve"))
				}
			}
		}
	}
}

func TestPlanRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		opts planOptions
		want error
	}{
		{"too few players", planOptions{mode: model.ModeRotating, count: 3, courts: 1}, model.ErrInsufficientPlayers},
		{"odd fixed roster", planOptions{mode: model.ModeFixed, count: 5, courts: 1}, model.ErrOddPlayerCount},
		{"no courts", planOptions{mode: model.ModeRotating, count: 8}, model.ErrInvalidCourts},
		{"bad team", planOptions{mode: model.ModeFixed, count: 4, courts: 1, teams: []string{"P1"}}, model.ErrInvalidTeam},
		{"unknown team member", planOptions{mode: model.ModeFixed, count: 4, courts: 1, teams: []string{"P1,Zed"}}, model.ErrPlayerNotFound},
		{"player on two teams", planOptions{mode: model.ModeFixed, count: 4, courts: 1, teams: []string{"P1,P2", "P2,P3"}}, model.ErrTeamConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.plan()
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := planOptions{mode: "swiss", count: 8, courts: 1}.plan()
	assert.Error(t, err)

	_, err = planOptions{mode: model.ModeRotating, players: []string{"A", "A", "B", "C"}, courts: 1}.plan()
	assert.Error(t, err)
}
