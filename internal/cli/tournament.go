package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/doubles-roundrobin/internal/api/response"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tournament",
		Aliases: []string{"t"},
		Short:   "Tournament management commands",
	}

	cmd.AddCommand(newTournamentCreateCmd())
	cmd.AddCommand(newTournamentGetCmd())
	cmd.AddCommand(newTournamentUpdateCmd())
	cmd.AddCommand(newTournamentDeleteCmd())
	cmd.AddCommand(newTournamentUseCmd())

	return cmd
}

func newTournamentCreateCmd() *cobra.Command {
	var (
		name       string
		courts     int
		mode       string
		maxPlayers int
		rounds     int
		started    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tournament and make it current",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"courts": courts}
			if name != "" {
				req["name"] = name
			}
			if mode != "" {
				req["mode"] = mode
			}
			if maxPlayers > 0 {
				req["max_players"] = maxPlayers
			}
			if rounds > 0 {
				req["num_rounds"] = rounds
			}

			var result response.Tournament
			if err := client.Post("/api/v1/tournaments", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveTournament(result.Code); err != nil {
				return fmt.Errorf("tournament created but could not save state: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name")
	cmd.Flags().IntVar(&courts, "courts", 1, "Number of courts")
	cmd.Flags().StringVar(&mode, "mode", "", "Pairing mode: rotating, fixed (default: rotating)")
	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Active roster capacity (default: server maximum)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Requested number of rounds (default: natural length)")

	return cmd
}

func newTournamentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current tournament",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("")
			if err != nil {
				return err
			}

			var result response.Tournament
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newTournamentUpdateCmd() *cobra.Command {
	var (
		name       string
		courts     int
		mode       string
		maxPlayers int
		rounds     int
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the current tournament's settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("")
			if err != nil {
				return err
			}

			req := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req["name"] = name
			}
			if flags.Changed("courts") {
				req["courts"] = courts
			}
			if flags.Changed("mode") {
				req["mode"] = mode
			}
			if flags.Changed("max-players") {
				req["max_players"] = maxPlayers
			}
			if flags.Changed("rounds") {
				req["num_rounds"] = rounds
			}
			if flags.Changed("started") {
				req["started"] = started
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to update")
			}

			var result response.Tournament
			if err := client.Patch(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name")
	cmd.Flags().IntVar(&courts, "courts", 0, "Number of courts")
	cmd.Flags().StringVar(&mode, "mode", "", "Pairing mode: rotating, fixed")
	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Active roster capacity")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Requested number of rounds, 0 for natural length")
	cmd.Flags().BoolVar(&started, "started", false, "Mark play as started, locking signups and removals")

	return cmd
}

func newTournamentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the current tournament with its roster and schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("")
			if err != nil {
				return err
			}

			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted tournament %s", cfg.Tournament))
			return nil
		},
	}
}

func newTournamentUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <code>",
		Short: "Make an existing tournament current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Tournament
			if err := client.Get("/api/v1/tournaments/"+args[0], &result); err != nil {
				return err
			}

			if err := cfg.SaveTournament(result.Code); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Using tournament %s (%s)", result.Code, result.Name))
			return nil
		},
	}
}
