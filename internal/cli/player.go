package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/doubles-roundrobin/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "player",
		Aliases: []string{"p"},
		Short:   "Roster commands for the current tournament",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRenameCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerStatusCmd("sit", "Sit a player out, promoting the next waitlisted player", false))
	cmd.AddCommand(newPlayerStatusCmd("play", "Bring a player back into the tournament", true))
	cmd.AddCommand(newPlayerAssignCmd())
	cmd.AddCommand(newPlayerAssignManyCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players, active first then waitlisted",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/players")
			if err != nil {
				return err
			}

			var result response.Roster
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>...",
		Short: "Sign players up; players past capacity join the waitlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/players")
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			for _, name := range args {
				var result response.Player
				if err := client.Post(path, map[string]string{"name": name}, &result); err != nil {
					return fmt.Errorf("adding %s: %w", name, err)
				}
				out.Print(result)
			}
			return nil
		},
	}
}

func newPlayerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <player-id> <name>",
		Short: "Change a player's name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return patchPlayer(cmd, args[0], map[string]any{"name": args[1]})
		},
	}
}

func newPlayerStatusCmd(use, short string, playing bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <player-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return patchPlayer(cmd, args[0], map[string]any{"is_playing": playing})
		},
	}
}

func newPlayerAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <player-id> [division-id]",
		Short: "Assign a player to a division, or unassign without one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			division := ""
			if len(args) == 2 {
				division = args[1]
			}
			return patchPlayer(cmd, args[0], map[string]any{"division_id": division})
		},
	}
}

func newPlayerAssignManyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-many <player-id>=<division-id>...",
		Short: "Assign several players in one step; an empty division unassigns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments := make([]map[string]string, len(args))
			for i, arg := range args {
				player, division, ok := strings.Cut(arg, "=")
				if !ok || player == "" {
					return fmt.Errorf("invalid assignment %q: want <player-id>=<division-id>", arg)
				}
				assignments[i] = map[string]string{"player_id": player, "division_id": division}
			}

			path, err := cfg.TournamentPath("/players/assign")
			if err != nil {
				return err
			}

			var result response.Assigned
			if err := client.Post(path, map[string]any{"assignments": assignments}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func patchPlayer(cmd *cobra.Command, id string, req map[string]any) error {
	path, err := cfg.TournamentPath("/players/" + id)
	if err != nil {
		return err
	}

	var result response.PlayerChange
	if err := client.Patch(path, req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <player-id>",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/players/" + args[0])
			if err != nil {
				return err
			}

			var result response.PlayerChange
			if err := client.Do(http.MethodDelete, path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Removed player %s", args[0]))
			if result.Promoted != nil {
				out.Print(result)
			}
			return nil
		},
	}
}

func newWaitlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Waitlist commands for the current tournament",
	}

	cmd.AddCommand(newWaitlistApproveCmd())

	return cmd
}

func newWaitlistApproveCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "approve [player-id]",
		Short: "Approve a waitlisted player, or everyone with --all",
		Long: "Approving a waitlisted player raises the tournament's capacity so " +
			"they can join without displacing anyone.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("pass either a player id or --all")
			}

			path, err := cfg.TournamentPath("/waitlist")
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if all {
				var result response.Approved
				if err := client.Post(path, map[string]any{"all": true}, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result response.Player
			if err := client.Post(path, map[string]any{"player_id": args[0]}, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Approve every waitlisted player")

	return cmd
}
