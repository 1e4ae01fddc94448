package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mcoot/doubles-roundrobin/internal/api/response"
)

// spinnerCharset is the spinner style shown while waiting on the server
const spinnerCharset = 14

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"s"},
		Short:   "Generate and show the current tournament's schedule",
	}

	cmd.AddCommand(newScheduleGenerateCmd())
	cmd.AddCommand(newScheduleShowCmd())
	cmd.AddCommand(newScheduleEstimateCmd())
	cmd.AddCommand(newScheduleScoreCmd())

	return cmd
}

func newScheduleGenerateCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a schedule for the active roster, replacing any previous one",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/schedule")
			if err != nil {
				return err
			}

			req := map[string]any{}
			if rounds > 0 {
				req["num_rounds"] = rounds
			}

			var result response.Schedule
			err = withSpinner(" generating schedule", func() error {
				return client.Post(path, req, &result)
			})
			if err != nil {
				return err
			}

			return printSchedule(cmd, result)
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (default: tournament setting)")

	return cmd
}

func newScheduleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the generated schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/schedule")
			if err != nil {
				return err
			}

			var result response.Schedule
			if err := client.Get(path, &result); err != nil {
				return err
			}

			return printSchedule(cmd, result)
		},
	}
}

func newScheduleEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Suggest a round count for the active roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/schedule/estimate")
			if err != nil {
				return err
			}

			var result response.Estimate
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newScheduleScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <match-id> <team1-score> <team2-score>",
		Short: "Enter the final score of a match",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores := make([]int, 2)
			for i, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid score %q", arg)
				}
				scores[i] = n
			}

			path, err := cfg.TournamentPath("/matches/" + args[0])
			if err != nil {
				return err
			}

			var result response.Match
			req := map[string]int{"team1_score": scores[0], "team2_score": scores[1]}
			if err := client.Patch(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newRankingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rankings",
		Short: "Show standings from the entered match scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/rankings")
			if err != nil {
				return err
			}

			var result response.Rankings
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

// printSchedule prints a server schedule with player names from the roster
func printSchedule(cmd *cobra.Command, s response.Schedule) error {
	names := map[string]string{}
	if cfg.Output != "json" {
		path, err := cfg.TournamentPath("/players")
		if err != nil {
			return err
		}
		var roster response.Roster
		if err := client.Get(path, &roster); err != nil {
			return err
		}
		for _, p := range roster.Players {
			names[p.ID] = p.Name
		}
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.PrintSchedule(s, names)
	return nil
}

// withSpinner runs fn while showing a spinner on stderr in text mode
func withSpinner(suffix string, fn func() error) error {
	if cfg.Output == "json" {
		return fn()
	}

	s := spinner.New(spinner.CharSets[spinnerCharset], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	defer s.Stop()

	return fn()
}
