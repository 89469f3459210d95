package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"clarion/internal/alarm"
	"clarion/internal/cli/formatter"
	"clarion/internal/clock"
)

func newAlarmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm",
		Short: "Manage the alarm",
	}

	cmd.AddCommand(
		newAlarmSetCmd(app),
		newAlarmShowCmd(app),
		newAlarmToggleCmd(app),
		newAlarmRemoveCmd(app),
	)

	return cmd
}

func newAlarmSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [HH:MM]",
		Short: "Set the alarm time, replacing any existing alarm",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("alarm time is required, e.g. 'clarion alarm set 07:30'")
				}
				if err := alarmTimeForm(&input).Run(); err != nil {
					return err
				}
			}

			if err := validateTimeInput(input); err != nil {
				return fmt.Errorf("invalid alarm time %q: %w", input, err)
			}

			created, err := app.Alarms.Create(clock.ParseTimeOfDay(input))
			if err != nil {
				return err
			}

			now := app.Clock.Now()
			at := clock.NextFireTime(now, created.Time, created.LastFiredDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Alarm set for %s. Rings in %s.\n",
				formatter.Bold(created.Time.String()),
				formatter.StyleBlue.Render(clock.HumanCountdown(now, at)))
			return nil
		},
	}
	return cmd
}

// validateTimeInput checks the "HH:MM" shape. Out-of-range values are
// left to ParseTimeOfDay's clamping.
func validateTimeInput(s string) error {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected HH:MM")
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return fmt.Errorf("expected HH:MM")
		}
	}
	return nil
}

func alarmTimeForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Alarm time (HH:MM)").
				Placeholder("07:30").
				Value(value).
				Validate(validateTimeInput),
		),
	).WithShowHelp(false)
}

func newAlarmShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured alarm",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.Alarms.Get()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAlarm(record, app.Clock.Now()))
			return nil
		},
	}
}

func newAlarmToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [on|off]",
		Short: "Enable or disable the alarm without deleting it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.Alarms.Get()
			if err != nil {
				return err
			}
			if record == nil {
				return alarm.ErrNoAlarm
			}

			enable := !record.Enabled
			if len(args) == 1 {
				switch args[0] {
				case "on":
					enable = true
				case "off":
					enable = false
				default:
					return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
				}
			}

			updated, err := app.Alarms.Toggle(enable)
			if err != nil {
				return err
			}
			if updated.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Alarm "+formatter.StyleGreen.Render("enabled")+".")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Alarm "+formatter.StyleDim.Render("disabled")+".")
			}
			return nil
		},
	}
}

func newAlarmRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm",
		Short: "Delete the alarm",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Alarms.Delete(); err != nil {
				if errors.Is(err, alarm.ErrNoAlarm) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No alarm to remove."))
					return nil
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Alarm removed.")
			return nil
		},
	}
}
