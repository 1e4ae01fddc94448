package cli

import (
	"errors"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

var errNoTournament = errors.New("no current tournament: pass --tournament or run 'rrdoubles tournament use <code>'")

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "rrdoubles",
		Short: "Round-robin doubles scheduling from the command line",
		Long: heredoc.Doc(`
			rrdoubles runs round-robin doubles tournaments.

			The plan and estimate commands work offline and print a schedule
			for a list of players. The remaining commands talk to a running
			rrdoubles server and operate on the current tournament, which is
			remembered after 'tournament create' or 'tournament use'.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load current tournament from the state file if not provided via flag/env
			if err := cfg.LoadTournament(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: RRDOUBLES_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Tournament, "tournament", "t", cfg.Tournament, "Tournament code (env: RRDOUBLES_TOURNAMENT)")
	rootCmd.PersistentFlags().StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "File remembering the current tournament (env: RRDOUBLES_STATE_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Offline commands
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newEstimateCmd())

	// Server commands
	rootCmd.AddCommand(newTournamentCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newWaitlistCmd())
	rootCmd.AddCommand(newDivisionCmd())
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newRankingsCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
