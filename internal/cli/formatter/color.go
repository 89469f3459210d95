package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"clarion/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ResultIndicator returns a colored outcome marker such as "● WIN".
func ResultIndicator(result domain.SessionResult) string {
	switch result {
	case domain.ResultWin:
		return StyleGreen.Render("● WIN")
	case domain.ResultKill:
		return StyleYellow.Render("● KILLED")
	case domain.ResultTimeout:
		return StyleRed.Render("● TIMEOUT")
	case domain.ResultFail:
		return StyleRed.Render("● FAILED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// DifficultyColor returns the style for a difficulty tier.
func DifficultyColor(d domain.Difficulty) lipgloss.Style {
	switch d {
	case domain.DifficultyHard:
		return StyleRed
	case domain.DifficultyMedium:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
