package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clarion/internal/alarm"
	"clarion/internal/cli/formatter"
	"clarion/internal/clock"
	"clarion/internal/tui"
)

func newRingCmd(app *App) *cobra.Command {
	var now bool

	cmd := &cobra.Command{
		Use:   "ring",
		Short: "Wait for the alarm and run the wake-up session",
		Long: "Keeps the process in the foreground, polling once per second as the " +
			"last-resort firing path. When the alarm fires, the full-screen " +
			"dismissal flow takes over.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("ring needs an interactive terminal")
			}

			record, err := app.Alarms.Get()
			if err != nil {
				return err
			}
			if record == nil || !record.Enabled {
				return alarm.ErrNoAlarm
			}

			// A full pool before the wait starts; generation can only
			// improve it later.
			if err := app.Pool.EnsureFilled(app.Categories()); err != nil {
				return err
			}
			if app.Model != nil {
				app.Model.OnReady(func() {
					go app.Pool.UpgradeWithGenerated(cmd.Context(), app.Categories())
				})
				go app.InitializeModel(cmd.Context())
			}

			if now {
				if err := app.Sessions.HandleFired(record.ID); err != nil {
					return err
				}
				return runRingSession(app, cmd)
			}

			out := cmd.OutOrStdout()
			at := clock.NextFireTime(app.Clock.Now(), record.Time, record.LastFiredDate)
			fmt.Fprintf(out, "Waiting for %s (%s). Ctrl+C to stop.\n",
				formatter.Bold(record.Time.String()),
				formatter.Dim(clock.HumanCountdown(app.Clock.Now(), at)))

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
					if err := app.Alarms.CheckPreload(cmd.Context()); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("preload: "+err.Error()))
					}
					if app.Sessions.Tick(app.Clock.Now()).Fired {
						return runRingSession(app, cmd)
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&now, "now", false, "Fire immediately instead of waiting")
	return cmd
}

func runRingSession(app *App, cmd *cobra.Command) error {
	model := tui.NewRingModel(app.Sessions, app.Clock)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	if summary := model.Summary(); summary != nil {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(summary))
	}
	return nil
}
