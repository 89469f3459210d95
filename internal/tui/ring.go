// Package tui renders the full-screen ringing and questioning flow.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clarion/internal/alarm"
	"clarion/internal/cli/formatter"
	"clarion/internal/clock"
	"clarion/internal/domain"
)

// killAttemptLimit closes the code entry after this many wrong tries.
// The alarm keeps ringing; only a correct code ends it.
const killAttemptLimit = 3

type ringPhase int

const (
	phaseRinging ringPhase = iota
	phaseQuestioning
	phaseKillEntry
	phaseDone
)

type tickMsg time.Time

type ringKeyMap struct {
	Dismiss key.Binding
	Kill    key.Binding
	Options key.Binding
	Submit  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultRingKeys() ringKeyMap {
	return ringKeyMap{
		Dismiss: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer questions")),
		Kill:    key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "kill code")),
		Options: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RingModel drives one alarm session from ringing to resolution.
type RingModel struct {
	mgr   *alarm.SessionManager
	clock clock.Clock
	keys  ringKeyMap

	phase    ringPhase
	question *domain.Question
	feedback string

	killInput    string
	killAttempts int

	summary *domain.SessionSummary
	width   int
}

func NewRingModel(mgr *alarm.SessionManager, clk clock.Clock) *RingModel {
	if clk == nil {
		clk = clock.System{}
	}
	return &RingModel{mgr: mgr, clock: clk, keys: defaultRingKeys()}
}

// Summary returns the terminal outcome once the model has quit.
func (m *RingModel) Summary() *domain.SessionSummary {
	return m.summary
}

func (m *RingModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *RingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if m.phase == phaseDone {
			return m, nil
		}
		result := m.mgr.Tick(m.clock.Now())
		if result.TimedOut != nil {
			m.summary = result.TimedOut
			m.phase = phaseDone
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *RingModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseRinging:
		switch {
		case key.Matches(msg, m.keys.Dismiss):
			if err := m.mgr.BeginQuestioning(); err != nil {
				m.feedback = err.Error()
				return m, nil
			}
			m.question = m.mgr.CurrentQuestion()
			m.feedback = ""
			m.phase = phaseQuestioning
		case key.Matches(msg, m.keys.Kill):
			m.killInput = ""
			m.phase = phaseKillEntry
		}
		return m, nil

	case phaseQuestioning:
		switch {
		case key.Matches(msg, m.keys.Kill):
			m.killInput = ""
			m.phase = phaseKillEntry
			return m, nil
		case key.Matches(msg, m.keys.Options):
			idx := int(msg.String()[0] - '1')
			return m.submitAnswer(idx)
		}
		return m, nil

	case phaseKillEntry:
		return m.handleKillKey(msg)

	case phaseDone:
		if key.Matches(msg, m.keys.Quit) || msg.Type == tea.KeyEnter {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *RingModel) submitAnswer(idx int) (tea.Model, tea.Cmd) {
	out, err := m.mgr.Answer(idx)
	if err != nil {
		m.feedback = err.Error()
		return m, nil
	}
	if out.Summary != nil {
		m.summary = out.Summary
		m.phase = phaseDone
		return m, nil
	}
	if out.Correct {
		m.feedback = formatter.StyleGreen.Render("Correct!")
	} else {
		m.feedback = formatter.StyleRed.Render("Wrong, try the next one.")
	}
	m.question = m.mgr.CurrentQuestion()
	return m, nil
}

func (m *RingModel) handleKillKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.phase = m.returnPhase()
		m.feedback = ""
		return m, nil

	case msg.Type == tea.KeyBackspace:
		if len(m.killInput) > 0 {
			m.killInput = m.killInput[:len(m.killInput)-1]
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		summary, err := m.mgr.Kill(m.killInput)
		if err != nil {
			m.killAttempts++
			m.killInput = ""
			if m.killAttempts >= killAttemptLimit {
				// Entry closes; the alarm is still live.
				m.killAttempts = 0
				m.feedback = formatter.StyleRed.Render("Too many wrong codes.")
				m.phase = m.returnPhase()
				return m, nil
			}
			m.feedback = formatter.StyleRed.Render("Wrong code.")
			return m, nil
		}
		m.summary = summary
		m.phase = phaseDone
		return m, nil

	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' && len(m.killInput) < 4 {
			m.killInput += s
		}
		return m, nil
	}
}

// returnPhase picks where kill entry backs out to.
func (m *RingModel) returnPhase() ringPhase {
	if session := m.mgr.Active(); session != nil && session.Status == domain.SessionQuestioning {
		return phaseQuestioning
	}
	return phaseRinging
}

var (
	ringBanner = lipgloss.NewStyle().
			Foreground(formatter.ColorRed).
			Bold(true).
			Padding(1, 4)
	ringBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorDim).
		Padding(1, 2)
)

func (m *RingModel) View() string {
	switch m.phase {
	case phaseRinging:
		return m.viewRinging()
	case phaseQuestioning:
		return m.viewQuestioning()
	case phaseKillEntry:
		return m.viewKillEntry()
	default:
		return m.viewDone()
	}
}

func (m *RingModel) viewRinging() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(ringBanner.Render("⏰  WAKE UP"))
	b.WriteString("\n\n")
	b.WriteString("  " + formatter.Bold("Answer questions to dismiss the alarm.") + "\n\n")
	b.WriteString("  " + formatter.StyleGreen.Render("enter") + formatter.Dim("  start answering") + "\n")
	b.WriteString("  " + formatter.StyleYellow.Render("k") + formatter.Dim("      emergency kill code") + "\n")
	if m.feedback != "" {
		b.WriteString("\n  " + m.feedback + "\n")
	}
	return b.String()
}

func (m *RingModel) viewQuestioning() string {
	session := m.mgr.Active()
	if session == nil || m.question == nil {
		return "\n  " + formatter.Dim("Loading questions...") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Dismiss Alarm") + "\n\n")
	b.WriteString(ringBox.Render(m.question.Text) + "\n\n")
	for i, opt := range m.question.Options {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			formatter.StyleBlue.Render(fmt.Sprintf("[%d]", i+1)), opt))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s  %s %s\n",
		formatter.Dim("correct"),
		formatter.StyleGreen.Render(fmt.Sprintf("%d", session.QuestionsCorrect)),
		formatter.Dim("wrong"),
		formatter.StyleRed.Render(fmt.Sprintf("%d/%d", session.WrongAnswers, domain.MaxWrongAnswers))))
	if m.feedback != "" {
		b.WriteString("\n  " + m.feedback + "\n")
	}
	b.WriteString("\n  " + formatter.Dim("1-4 answer · k kill code") + "\n")
	return b.String()
}

func (m *RingModel) viewKillEntry() string {
	masked := strings.Repeat("•", len(m.killInput)) + strings.Repeat("_", 4-len(m.killInput))
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Kill Code") + "\n\n")
	b.WriteString("  " + formatter.Bold(masked) + "\n")
	if m.feedback != "" {
		b.WriteString("\n  " + m.feedback + "\n")
	}
	b.WriteString("\n  " + formatter.Dim("enter submit · esc back") + "\n")
	return b.String()
}

func (m *RingModel) viewDone() string {
	if m.summary == nil {
		return ""
	}
	return formatter.FormatSummary(m.summary) + "\n  " + formatter.Dim("press enter to exit") + "\n"
}
