package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"clarion/internal/cli/formatter"
	"clarion/internal/genai"
)

type stateMsg genai.State

type loadDoneMsg struct{ ok bool }

// DownloadModel shows model download/load progress by subscribing to
// adapter state transitions.
type DownloadModel struct {
	adapter *genai.Adapter
	bar     progress.Model

	states chan genai.State
	cancel func()

	state    genai.State
	finished bool
	ok       bool
}

func NewDownloadModel(adapter *genai.Adapter) *DownloadModel {
	m := &DownloadModel{
		adapter: adapter,
		bar:     progress.New(progress.WithDefaultGradient()),
		states:  make(chan genai.State, 16),
	}
	m.cancel = adapter.Subscribe(func(s genai.State) {
		select {
		case m.states <- s:
		default:
		}
	})
	return m
}

// Succeeded reports whether the model reached ready.
func (m *DownloadModel) Succeeded() bool { return m.ok }

func (m *DownloadModel) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), m.startLoad())
}

func (m *DownloadModel) startLoad() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{ok: m.adapter.Initialize(context.Background())}
	}
}

func (m *DownloadModel) waitForState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-m.states)
	}
}

func (m *DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = genai.State(msg)
		return m, m.waitForState()

	case loadDoneMsg:
		m.finished = true
		m.ok = msg.ok
		m.cancel()
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *DownloadModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Model Download") + "\n\n")

	switch m.state.Status {
	case genai.StatusDownloading:
		b.WriteString("  " + m.bar.ViewAs(float64(m.state.Progress.Percent)/100) + "\n")
		if m.state.Progress.Message != "" {
			b.WriteString("  " + formatter.Dim(m.state.Progress.Message) + "\n")
		}
	case genai.StatusLoading:
		b.WriteString("  " + formatter.StyleBlue.Render("Loading into memory...") + "\n")
	case genai.StatusReady:
		b.WriteString("  " + formatter.StyleGreen.Render("Model ready.") + "\n")
	case genai.StatusError:
		b.WriteString("  " + formatter.StyleRed.Render("Load failed.") + "\n")
		if m.state.Err != "" {
			b.WriteString("  " + formatter.Dim(m.state.Err) + "\n")
		}
	default:
		b.WriteString("  " + formatter.Dim("Starting...") + "\n")
	}
	return b.String()
}
