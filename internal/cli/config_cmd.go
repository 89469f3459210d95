package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"clarion/internal/cli/formatter"
	"clarion/internal/domain"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change alarm preferences",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.Get()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Preferences"))
			fmt.Fprintf(out, "  Difficulty   %s\n",
				formatter.DifficultyColor(settings.Difficulty).Render(string(settings.Difficulty)))
			cats := make([]string, len(settings.Categories))
			for i, c := range settings.Categories {
				cats[i] = string(c)
			}
			fmt.Fprintf(out, "  Categories   %s\n", strings.Join(cats, ", "))
			fmt.Fprintf(out, "  Tone         %s\n", string(settings.Tone))
			vib := "off"
			if settings.Vibration {
				vib = "on"
			}
			fmt.Fprintf(out, "  Vibration    %s\n", vib)
			kill := formatter.Dim("not set (any code works)")
			if settings.HasKillCode() {
				kill = "set"
			}
			fmt.Fprintf(out, "  Kill code    %s\n", kill)
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var difficulty, tone string
	var categories []string
	var vibration bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagged := cmd.Flags().Changed("difficulty") ||
				cmd.Flags().Changed("categories") ||
				cmd.Flags().Changed("tone") ||
				cmd.Flags().Changed("vibration")

			if !flagged {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("no flags given; use --difficulty, --categories, --tone, or --vibration")
				}
				return runConfigForm(app, cmd)
			}

			_, err := app.Settings.Update(func(s *domain.Settings) {
				if cmd.Flags().Changed("difficulty") {
					s.Difficulty = domain.Difficulty(strings.ToUpper(difficulty))
				}
				if cmd.Flags().Changed("categories") {
					s.Categories = parseCategories(categories)
				}
				if cmd.Flags().Changed("tone") {
					s.Tone = domain.Tone(strings.ToLower(tone))
				}
				if cmd.Flags().Changed("vibration") {
					s.Vibration = vibration
				}
			})
			if err != nil {
				return err
			}

			if err := syncAlarmFromSettings(app); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "EASY, MEDIUM, or HARD")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Question categories (math,patterns,general,logic)")
	cmd.Flags().StringVar(&tone, "tone", "", "Alarm tone (gentle, classic, intense)")
	cmd.Flags().BoolVar(&vibration, "vibration", true, "Vibrate while ringing")
	return cmd
}

func parseCategories(raw []string) []domain.Category {
	var out []domain.Category
	for _, r := range raw {
		c := domain.Category(strings.ToLower(strings.TrimSpace(r)))
		if domain.ValidCategories[c] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = domain.DefaultSettings().Categories
	}
	return out
}

func runConfigForm(app *App, cmd *cobra.Command) error {
	settings, err := app.Settings.Get()
	if err != nil {
		return err
	}

	difficulty := settings.Difficulty
	tone := settings.Tone
	categories := settings.Categories
	vibration := settings.Vibration

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy (1 correct answer)", domain.DifficultyEasy),
					huh.NewOption("Medium (3 correct answers)", domain.DifficultyMedium),
					huh.NewOption("Hard (5 correct answers)", domain.DifficultyHard),
				).
				Value(&difficulty),
			huh.NewMultiSelect[domain.Category]().
				Title("Question categories").
				Options(
					huh.NewOption("Math", domain.CategoryMath),
					huh.NewOption("Patterns", domain.CategoryPatterns),
					huh.NewOption("General knowledge", domain.CategoryGeneral),
					huh.NewOption("Logic", domain.CategoryLogic),
				).
				Value(&categories).
				Validate(func(cs []domain.Category) error {
					if len(cs) == 0 {
						return fmt.Errorf("pick at least one category")
					}
					return nil
				}),
			huh.NewSelect[domain.Tone]().
				Title("Alarm tone").
				Options(
					huh.NewOption("Gentle", domain.ToneGentle),
					huh.NewOption("Classic", domain.ToneClassic),
					huh.NewOption("Intense", domain.ToneIntense),
				).
				Value(&tone),
			huh.NewConfirm().
				Title("Vibration").
				Value(&vibration),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	_, err = app.Settings.Update(func(s *domain.Settings) {
		s.Difficulty = difficulty
		s.Categories = categories
		s.Tone = tone
		s.Vibration = vibration
	})
	if err != nil {
		return err
	}

	if err := syncAlarmFromSettings(app); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Preferences updated.")
	return nil
}

// syncAlarmFromSettings pushes changed preferences into the stored
// alarm record so the next firing uses them.
func syncAlarmFromSettings(app *App) error {
	record, err := app.Alarms.Get()
	if err != nil || record == nil {
		return err
	}
	settings, err := app.Settings.Get()
	if err != nil {
		return err
	}
	_, err = app.Alarms.Update(func(a *domain.Alarm) {
		a.Difficulty = settings.Difficulty
		a.Tone = settings.Tone
		a.Vibration = settings.Vibration
	})
	return err
}
