package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var errStopStream = errors.New("stop stream")

func newWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the current tournament as they happen",
		Long:  "Streams roster, settings and schedule changes until interrupted or the tournament is deleted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfg.TournamentPath("/events")
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			seen := 0
			return client.Stream(ctx, path, func(event, data string) error {
				if event == "connected" {
					if cfg.Verbose {
						fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s\n", cfg.Tournament)
					}
					return nil
				}

				var e WatchEvent
				if err := json.Unmarshal([]byte(data), &e); err != nil {
					return fmt.Errorf("invalid event %q: %w", event, err)
				}
				out.Print(e)

				seen++
				if e.Type == "deleted" || (count > 0 && seen >= count) {
					return errStopStream
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many changes (0 watches until interrupted)")
	return cmd
}
