package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	Tournament string
	StateFile  string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("RRDOUBLES_SERVER", "http://localhost:8080"),
		Tournament: os.Getenv("RRDOUBLES_TOURNAMENT"),
		StateFile:  getEnvOrDefault("RRDOUBLES_STATE_FILE", defaultStateFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadTournament loads the current tournament code from the state file
// if one was not given by flag or environment
func (c *Config) LoadTournament() error {
	if c.Tournament != "" {
		c.Tournament = strings.ToUpper(c.Tournament)
		return nil
	}

	data, err := os.ReadFile(c.StateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No current tournament is fine
		}
		return err
	}

	c.Tournament = strings.ToUpper(strings.TrimSpace(string(data)))
	return nil
}

// SaveTournament records code as the current tournament
func (c *Config) SaveTournament(code string) error {
	c.Tournament = strings.ToUpper(code)

	dir := filepath.Dir(c.StateFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.StateFile, []byte(c.Tournament), 0600)
}

// TournamentPath returns the API path for the current tournament
func (c *Config) TournamentPath(suffix string) (string, error) {
	if c.Tournament == "" {
		return "", errNoTournament
	}
	return "/api/v1/tournaments/" + c.Tournament + suffix, nil
}

func defaultStateFile() string {
	return filepath.Join(xdg.StateHome, "rrdoubles", "tournament")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
