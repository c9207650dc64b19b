// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuispell/internal/practice"
	"github.com/verte-zerg/tuispell/internal/session"
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	orch    *practice.Orchestrator
	board   board
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	bannerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	suggestStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
)

// NewModel constructs a typing TUI model around orch.
func NewModel(orch *practice.Orchestrator) *Model {
	m := &Model{
		orch:    orch,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(currentWordStyle)),
	}
	orch.Subscribe(m.board.apply)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.restart()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if !m.orch.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, m.orch.Update(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.orch.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Restart):
		return m.restart()
	case key.Matches(msg, m.keys.Stop):
		return m.orch.Stop()
	}
	if msg.Paste {
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace:
		return m.orch.HandleKey(session.Backspace())
	case tea.KeySpace:
		return m.orch.HandleKey(session.RuneKey(' '))
	case tea.KeyRunes:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			cmds = append(cmds, m.orch.HandleKey(session.RuneKey(r)))
		}
		return tea.Batch(cmds...)
	default:
		return nil
	}
}

func (m *Model) restart() tea.Cmd {
	return tea.Batch(m.orch.Restart(), m.spinner.Tick)
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderContent() string {
	switch {
	case m.orch.Loading():
		return m.spinner.View() + " Fetching words..."
	case m.orch.Err() != nil:
		lines := []string{
			errorStyle.Render("Could not start a session: " + m.orch.Err().Error()),
			footerStyle.Render("Press tab to try again."),
		}
		return strings.Join(lines, "\n")
	case len(m.board.words) == 0:
		return ""
	}

	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(1, int(float64(m.width)*0.70))
	}
	text := wrapStyledRunes(buildStyledRunes(m.board.words, m.board.statuses, m.board.caret), contentWidth)
	if m.board.phase != session.PhaseFinished {
		return text
	}
	return text + "\n\n" + m.renderFinish()
}

func (m *Model) renderFinish() string {
	snap := m.board.metrics
	lines := []string{
		bannerStyle.Render(fmt.Sprintf("Finished! %d WPM · %d%% accuracy in %s", snap.WPM, snap.Accuracy, snap.Formatted)),
	}
	if s := m.orch.Suggestions(); len(s) > 0 {
		lines = append(lines, suggestStyle.Render("Practice next: "+strings.Join(s, ", ")))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if len(m.board.words) == 0 || m.orch.Loading() {
		return ""
	}
	snap := m.board.metrics
	segments := []string{
		snap.Formatted,
		fmt.Sprintf("%d WPM", snap.WPM),
		fmt.Sprintf("%d%%", snap.Accuracy),
		fmt.Sprintf("Progress %d%%", m.board.progress()),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
