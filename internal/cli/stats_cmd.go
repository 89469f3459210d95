package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarion/internal/cli/formatter"
)

func newStatsCmd(app *App) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show wake-up statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				if err := app.Stats.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Stats reset.")
				return nil
			}

			stats, err := app.Stats.Get()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Clear all recorded statistics")
	return cmd
}
