package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/doubles-roundrobin/internal/api/response"
)

func newDivisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "division",
		Short: "Split courts between groups of players",
	}

	cmd.AddCommand(newDivisionAddCmd())
	cmd.AddCommand(newDivisionUpdateCmd())
	cmd.AddCommand(newDivisionDeleteCmd())

	return cmd
}

func divisionFlags(cmd *cobra.Command, courtStart, courtEnd *int, color *string) {
	cmd.Flags().IntVar(courtStart, "from", 1, "First court of the division")
	cmd.Flags().IntVar(courtEnd, "to", 1, "Last court of the division")
	cmd.Flags().StringVar(color, "color", "", "Display color (default: next palette color)")
}

func newDivisionAddCmd() *cobra.Command {
	var (
		courtStart, courtEnd int
		color                string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Reserve a court range for a new division",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/divisions")
			if err != nil {
				return err
			}

			req := map[string]any{"name": args[0], "court_start": courtStart, "court_end": courtEnd, "color": color}
			var result response.Division
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	divisionFlags(cmd, &courtStart, &courtEnd, &color)
	return cmd
}

func newDivisionUpdateCmd() *cobra.Command {
	var (
		courtStart, courtEnd int
		color                string
	)

	cmd := &cobra.Command{
		Use:   "update <division-id> <name>",
		Short: "Rename a division or move its courts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/divisions/" + args[0])
			if err != nil {
				return err
			}

			req := map[string]any{"name": args[1], "court_start": courtStart, "court_end": courtEnd, "color": color}
			var result response.Division
			if err := client.Patch(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	divisionFlags(cmd, &courtStart, &courtEnd, &color)
	return cmd
}

func newDivisionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <division-id>",
		Short: "Delete a division; its players become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/divisions/" + args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted division %s", args[0]))
			return nil
		},
	}
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Register fixed partnerships for fixed mode",
	}

	var name string
	add := &cobra.Command{
		Use:   "add <player-id> <player-id>",
		Short: "Register two players as a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/teams")
			if err != nil {
				return err
			}

			req := map[string]any{"player1_id": args[0], "player2_id": args[1], "name": name}
			var result response.Team
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Team name (default: both player names)")

	remove := &cobra.Command{
		Use:   "remove <team-id>",
		Short: "Remove a registered team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/teams/" + args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Removed team %s", args[0]))
			return nil
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}
