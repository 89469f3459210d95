// Package cli wires the alarm engine into cobra commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"clarion/internal/alarm"
	"clarion/internal/clock"
	"clarion/internal/domain"
	"clarion/internal/genai"
	"clarion/internal/pool"
	"clarion/internal/storage"
)

// App holds references to the engine components used by CLI commands.
type App struct {
	Alarms   *alarm.Service
	Sessions *alarm.SessionManager
	Pool     *pool.Manager
	Model    *genai.Adapter // nil when generation is disabled
	Settings *storage.SettingsStore
	Stats    *storage.StatsStore
	Clock    clock.Clock

	// IsInteractive reports whether stdin is a terminal, gating huh
	// forms and the full-screen ring UI.
	IsInteractive func() bool
}

// Categories returns the configured question categories, falling back
// to the default set on a read failure.
func (a *App) Categories() []domain.Category {
	settings, err := a.Settings.Get()
	if err != nil {
		return domain.DefaultSettings().Categories
	}
	return settings.Categories
}

// ModelReady reports whether the generator can serve completions.
func (a *App) ModelReady() bool {
	return a.Model != nil && a.Model.Ready()
}

// InitializeModel loads the model when generation is enabled. Returns
// false when disabled or when loading settles into error.
func (a *App) InitializeModel(ctx context.Context) bool {
	if a.Model == nil {
		return false
	}
	return a.Model.Initialize(ctx)
}

// NewRootCmd creates the top-level "clarion" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "clarion",
		Short: "Alarm clock that makes you earn the snooze",
	}

	root.AddCommand(
		newAlarmCmd(app),
		newStatusCmd(app),
		newStatsCmd(app),
		newConfigCmd(app),
		newKillcodeCmd(app),
		newPoolCmd(app),
		newModelCmd(app),
		newRingCmd(app),
	)

	return root
}
