package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/doubles-roundrobin/internal/api"
	"github.com/mcoot/doubles-roundrobin/internal/factory"
	"github.com/mcoot/doubles-roundrobin/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	stateFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "rrdoubles-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rrdoubles")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		stateFile:  filepath.Join(t.TempDir(), "tournament"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.runWithOutput("json", args...)
}

func (r *cliRunner) runWithOutput(format string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--state-file", r.stateFile,
		"--output", format,
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "RRDOUBLES_TOURNAMENT=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:               testutil.NopLogger(),
		TournamentController: app.TournamentController,
		Events:               app.Events,
	})
	server := api.NewServer(router, api.DefaultServerConfig(), testutil.NopLogger())

	// Start server
	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			app.Events.Close()
			_ = server.Shutdown(context.Background())
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type tournamentResponse struct {
	Code       string `json:"code"`
	Mode       string `json:"mode"`
	Courts     int    `json:"courts"`
	MaxPlayers int    `json:"max_players"`
}

type playerResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	IsPlaying        bool   `json:"is_playing"`
	WaitlistPosition int    `json:"waitlist_position"`
}

type rosterResponse struct {
	Players    []playerResponse `json:"players"`
	Active     int              `json:"active"`
	Waitlisted int              `json:"waitlisted"`
}

type scheduleResponse struct {
	Rounds []struct {
		Number  int `json:"number"`
		Matches []struct {
			Court int       `json:"court"`
			Team1 [2]string `json:"team1"`
			Team2 [2]string `json:"team2"`
		} `json:"matches"`
		Sitting []string `json:"sitting"`
	} `json:"rounds"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_TournamentFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create tournament (code is saved to the state file)
	output, err := cli.run("tournament", "create", "--courts", "2", "--max-players", "8")
	require.NoError(t, err, "output: %s", output)

	var tournament tournamentResponse
	require.NoError(t, json.Unmarshal([]byte(output), &tournament))
	assert.Len(t, tournament.Code, 6)
	assert.Equal(t, "rotating", tournament.Mode)

	// Sign up ten players; two overflow onto the waitlist
	names := []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay", "Gus", "Hal", "Ivy", "Jon"}
	output, err = cli.runWithOutput("text", append([]string{"player", "add"}, names...)...)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "waitlist #2")

	output, err = cli.run("player", "list")
	require.NoError(t, err, "output: %s", output)

	var roster rosterResponse
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	assert.Equal(t, 8, roster.Active)
	assert.Equal(t, 2, roster.Waitlisted)

	// Removing an active player promotes Ivy
	output, err = cli.runWithOutput("text", "player", "remove", roster.Players[0].ID)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Promoted from waitlist: Ivy")

	// Estimate and generate
	output, err = cli.runWithOutput("text", "schedule", "estimate")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Suggested rounds")

	output, err = cli.run("schedule", "generate", "--rounds", "5")
	require.NoError(t, err, "output: %s", output)

	var schedule scheduleResponse
	require.NoError(t, json.Unmarshal([]byte(output), &schedule))
	require.Len(t, schedule.Rounds, 5)
	for _, r := range schedule.Rounds {
		assert.Len(t, r.Matches, 2)
		assert.Empty(t, r.Sitting)
	}

	// Text output names players
	output, err = cli.runWithOutput("text", "schedule", "show")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Round 5")
	assert.Contains(t, output, "Ivy")

	// Approve the last waitlisted player
	output, err = cli.run("waitlist", "approve", "--all")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"approved": 1`)
}

func TestCLI_UnknownTournament(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("--tournament", "zzzzzz", "tournament", "get")
	require.Error(t, err)
	assert.Contains(t, output, "TOURNAMENT_NOT_FOUND")
}

func TestCLI_PlanOffline(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.runWithOutput("text", "plan", "fixed", "Ann", "Bob", "Cat", "Dan", "--seed", "1")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, 1, strings.Count(output, "Round 1\n"))
	assert.Contains(t, output, "Ann & Bob")
	assert.Contains(t, output, "Cat & Dan")

	output, err = cli.run("estimate", "--players", "8", "--courts", "2")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"rounds": 10`)
}
