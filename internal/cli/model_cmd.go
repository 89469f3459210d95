package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clarion/internal/cli/formatter"
	"clarion/internal/domain"
	"clarion/internal/tui"
)

func newModelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage the question generator model",
	}

	cmd.AddCommand(
		newModelDownloadCmd(app),
		newModelStatusCmd(app),
	)

	return cmd
}

func newModelDownloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Download and load the generator model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Model == nil {
				return fmt.Errorf("generation is disabled; set CLARION_LLM_ENABLED=1")
			}

			var ok bool
			if app.IsInteractive != nil && app.IsInteractive() {
				model := tui.NewDownloadModel(app.Model)
				if _, err := tea.NewProgram(model).Run(); err != nil {
					return err
				}
				ok = model.Succeeded()
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Loading model...")
				ok = app.InitializeModel(cmd.Context())
			}

			if !ok {
				return fmt.Errorf("model failed to load; bank questions remain available")
			}

			if _, err := app.Settings.Update(func(s *domain.Settings) {
				s.ModelDownloaded = true
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model %s ready.\n",
				formatter.Bold(app.Model.Model()))
			return nil
		},
	}
}

func newModelStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the generator model state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Model == nil {
				fmt.Fprintln(cmd.OutOrStdout(),
					formatter.Dim("Generation disabled. Questions come from the built-in bank."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(),
				formatter.FormatModelState(app.Model.CurrentState(), app.Model.Model()))
			return nil
		},
	}
}
