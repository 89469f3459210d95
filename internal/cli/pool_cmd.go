package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clarion/internal/cli/formatter"
	"clarion/internal/pool"
)

func newPoolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect and maintain the question pool",
	}

	cmd.AddCommand(
		newPoolStatusCmd(app),
		newPoolFillCmd(app),
		newPoolUpgradeCmd(app),
	)

	return cmd
}

func newPoolStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the pool fill level",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(),
				formatter.FormatPool(app.Pool.Size(), pool.FullSize, app.Pool.Generating()))
			return nil
		},
	}
}

func newPoolFillCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Top the pool up from the built-in question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Pool.EnsureFilled(app.Categories()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pool ready: %d questions.\n", app.Pool.Size())
			return nil
		},
	}
}

func newPoolUpgradeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Regenerate the pool with the model, replacing bank questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Model == nil {
				return fmt.Errorf("generation is disabled; set CLARION_LLM_ENABLED=1")
			}

			ctx := cmd.Context()
			if !app.InitializeModel(ctx) {
				return fmt.Errorf("model failed to load; pool keeps its bank questions")
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Generating questions in phases..."))
			app.Pool.UpgradeWithGenerated(ctx, app.Categories())
			fmt.Fprintf(cmd.OutOrStdout(), "Pool ready: %d questions.\n", app.Pool.Size())
			return nil
		},
	}
}
