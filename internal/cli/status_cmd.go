package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarion/internal/cli/formatter"
	"clarion/internal/genai"
	"clarion/internal/pool"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show alarm, pool, and model status",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			record, err := app.Alarms.Get()
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatAlarm(record, app.Clock.Now()))
			fmt.Fprintln(out)

			fmt.Fprint(out, formatter.FormatPool(app.Pool.Size(), pool.FullSize, app.Pool.Generating()))
			fmt.Fprintln(out)

			state := genai.State{Status: genai.StatusUninitialized}
			model := ""
			if app.Model != nil {
				state = app.Model.CurrentState()
				model = app.Model.Model()
			}
			fmt.Fprint(out, formatter.FormatModelState(state, model))
			return nil
		},
	}
}
