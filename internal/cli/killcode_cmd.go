package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"clarion/internal/cli/formatter"
	"clarion/internal/domain"
)

func newKillcodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "killcode",
		Short: "Manage the emergency override code",
	}

	cmd.AddCommand(
		newKillcodeSetCmd(app),
		newKillcodeClearCmd(app),
	)

	return cmd
}

func validateKillCode(s string) error {
	if len(s) != 4 {
		return fmt.Errorf("kill code must be exactly 4 digits")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return fmt.Errorf("kill code must be exactly 4 digits")
		}
	}
	return nil
}

func newKillcodeSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [code]",
		Short: "Set the 4-digit kill code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			if len(args) == 1 {
				code = args[0]
			} else {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("kill code is required, e.g. 'clarion killcode set 1234'")
				}
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Kill code (4 digits)").
							EchoMode(huh.EchoModePassword).
							Value(&code).
							Validate(validateKillCode),
					),
				).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}

			if err := validateKillCode(code); err != nil {
				return err
			}
			if _, err := app.Settings.Update(func(s *domain.Settings) {
				s.KillCode = code
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Kill code set.")
			return nil
		},
	}
}

func newKillcodeClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the kill code (any code will dismiss)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Settings.Update(func(s *domain.Settings) {
				s.KillCode = ""
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				"Kill code cleared. "+formatter.Dim("Any code now dismisses a ringing alarm."))
			return nil
		},
	}
}
