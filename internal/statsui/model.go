// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuispell/internal/metrics"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/stats"
)

const (
	tabOverview = iota
	tabWords
)

const trendWindow = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Loader fetches a fresh report.
type Loader func(ctx context.Context) (stats.Report, error)

// Model implements the Bubble Tea stats UI.
type Model struct {
	load   Loader
	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	words     table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model and loads the first report.
func NewModel(load Loader) *Model {
	m := &Model{
		load:     load,
		tabs:     []string{"Overview", "Misspelled Words"},
		overview: viewport.New(0, 0),
		words: table.New(
			table.WithColumns(wordColumns()),
			table.WithHeight(1),
		),
	}
	m.words.SetStyles(wordTableStyles())
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			if m.activeTab == tabWords {
				m.words.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabWords {
				m.words.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabWords {
			m.words, cmd = m.words.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.words.SetWidth(m.width)
	m.words.SetHeight(max(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabWords {
		m.words.Focus()
	} else {
		m.words.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.activeTab == tabWords {
		if len(m.report.Errors) == 0 {
			return "No spelling errors recorded."
		}
		return tableMutedStyle.Render(m.words.View())
	}
	return m.overview.View()
}

func (m *Model) refreshReport() {
	report, err := m.load(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.words.SetRows(wordRows(report.Errors))
	m.renderContents()
}

func (m *Model) renderContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report.Sessions, width))
}

func renderOverview(sessions []model.SessionAggregate, width int) string {
	if len(sessions) == 0 {
		return "No sessions found."
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	wpms := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, acc := metrics.SessionWPM(s.Correct, s.Incorrect, s.DurationMs)
		wpms[i] = wpm
		totalWPM += wpm
		totalAcc += acc
		bestWPM = max(bestWPM, wpm)
	}
	count := float64(len(sessions))
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", len(sessions))),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", totalWPM/count)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", bestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", (totalAcc/count)*100)),
	}
	summary := strings.Join(cards, "\n")
	if width >= 80 {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	trend := stats.MovingAverage(wpms, trendWindow)
	label := "WPM trend "
	if limit := width - len(label); limit > 0 && len(trend) > limit {
		trend = trend[len(trend)-limit:]
	}
	return summary + "\n\n" + headerStyle.Render(label) + stats.Sparkline(trend)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func wordColumns() []table.Column {
	return []table.Column{
		{Title: "Word", Width: 16},
		{Title: "Errors", Width: 6},
		{Title: "Recent (typed→expected@pos)", Width: 40},
	}
}

func wordRows(errs model.ErrorMap) []table.Row {
	items := stats.TopMisspelled(errs, 0)
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		recent := make([]string, 0, len(item.Details))
		for i := len(item.Details) - 1; i >= 0; i-- {
			d := item.Details[i]
			recent = append(recent, fmt.Sprintf("%s→%s@%d", d.Typed, d.Expected, d.Position))
		}
		rows = append(rows, table.Row{item.Word, fmt.Sprintf("%d", item.Count), strings.Join(recent, " ")})
	}
	return rows
}

func wordTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
