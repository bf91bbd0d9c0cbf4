package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/stats"
)

const (
	tabOverview = iota
	tabHistory
	tabSubjects
)

var historyWidths = []int{17, 24, 8, 10, 10, 11}

type progressScreen struct {
	env
	report    stats.Report
	errMsg    string
	tabs      []string
	activeTab int
	viewports []viewport.Model
	history   table.Model
	width     int
}

func newProgressScreen(e env) *progressScreen {
	s := &progressScreen{
		env:  e,
		tabs: []string{"Overview", "History", "Subjects"},
	}
	s.viewports = make([]viewport.Model, len(s.tabs))
	for i := range s.viewports {
		s.viewports[i] = viewport.New(0, 0)
	}
	s.history = table.New(table.WithStyles(tableStyles()), table.WithFocused(true))
	return s
}

func (s *progressScreen) Init() tea.Cmd {
	s.refreshReport()
	return nil
}

func (s *progressScreen) capturing() bool { return false }

func (s *progressScreen) bindings() []key.Binding {
	return []key.Binding{
		binding("←/→", "tab"),
		binding("↑/↓", "scroll"),
		binding("g/G", "top/bottom"),
		binding("r", "refresh"),
	}
}

func (s *progressScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.updateLayout()
		s.renderTabContents()
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			s.moveTab(-1)
			return nil
		case "right", "l":
			s.moveTab(1)
			return nil
		case "r":
			s.refreshReport()
			return nil
		case "g", "home":
			if s.activeTab == tabHistory {
				s.history.GotoTop()
			} else {
				s.viewports[s.activeTab].GotoTop()
			}
			return nil
		case "G", "end":
			if s.activeTab == tabHistory {
				s.history.GotoBottom()
			} else {
				s.viewports[s.activeTab].GotoBottom()
			}
			return nil
		}
		if s.activeTab == tabHistory {
			var cmd tea.Cmd
			s.history, cmd = s.history.Update(msg)
			return cmd
		}
		var cmd tea.Cmd
		s.viewports[s.activeTab], cmd = s.viewports[s.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (s *progressScreen) moveTab(delta int) {
	count := len(s.tabs)
	next := s.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	s.activeTab = next
	if s.activeTab == tabHistory {
		s.history.Focus()
	} else {
		s.history.Blur()
	}
}

// tabBodyHeight is the space left for tab content below the tab bar.
func tabBodyHeight(height int) int {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	return max(1, height-tabsHeight-1)
}

func (s *progressScreen) updateLayout() {
	if s.width <= 0 {
		return
	}
	for i := range s.viewports {
		s.viewports[i].Width = s.width
	}
	s.history.SetWidth(s.width)
}

func (s *progressScreen) refreshReport() {
	report, err := stats.BuildReport(s.ctx, s.store, s.now())
	if err != nil {
		s.errMsg = err.Error()
		for i := range s.viewports {
			s.viewports[i].SetContent("Failed to load progress.")
		}
		return
	}
	s.errMsg = ""
	s.report = report
	s.history.SetColumns(historyColumns())
	s.history.SetRows(historyRows(report))
	s.renderTabContents()
}

func historyColumns() []table.Column {
	cols := make([]table.Column, len(stats.HistoryHeaders))
	for i, h := range stats.HistoryHeaders {
		cols[i] = table.Column{Title: h, Width: historyWidths[i]}
	}
	return cols
}

func historyRows(report stats.Report) []table.Row {
	raw := stats.HistoryRows(report.Sessions, 0)
	rows := make([]table.Row, 0, len(raw))
	for _, r := range raw {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = truncateLine(cell, historyWidths[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *progressScreen) renderTabContents() {
	if s.errMsg != "" {
		return
	}
	width := s.width
	if width <= 0 {
		width = fallbackWidth
	}
	s.viewports[tabOverview].SetContent(s.renderOverview(width))
	s.viewports[tabSubjects].SetContent(renderSubjectBars(s.report, width))
}

func (s *progressScreen) renderOverview(width int) string {
	st := s.report.Stats
	cards := cardRow(width,
		metricCard("Sessions", fmt.Sprintf("%d", st.TotalSessions)),
		metricCard("Hours", st.TotalHours),
		metricCard("This week", fmt.Sprintf("%d", st.SessionsThisWeek)),
		metricCard("Streak", fmt.Sprintf("%d days", st.Streak)),
	)
	if len(s.report.Sessions) == 0 {
		return cards + "\n\nNo sessions yet. Start one from the Study tab."
	}
	var buf bytes.Buffer
	if err := stats.RenderDailyChart(&buf, s.report.Daily, s.now(), width, false); err != nil {
		return cards + "\n\n" + fmt.Sprintf("Failed to render chart: %v", err)
	}
	return cards + "\n\n" + strings.TrimRight(buf.String(), "\n")
}

func renderSubjectBars(report stats.Report, width int) string {
	if len(report.Subjects) == 0 {
		return "No sessions yet."
	}
	top := report.Subjects[0].Hours
	barWidth := max(10, min(width-30, 40))
	lines := make([]string, 0, len(report.Subjects))
	for _, sh := range report.Subjects {
		pct := 0.0
		if top > 0 {
			pct = sh.Hours * 100 / top
		}
		lines = append(lines, fmt.Sprintf("%-18s %s %5.1f h", truncateLine(sh.Subject, 18), progressBar(pct, barWidth), sh.Hours))
	}
	return strings.Join(lines, "\n")
}

func (s *progressScreen) renderTabs() string {
	parts := make([]string, 0, len(s.tabs))
	for i, tab := range s.tabs {
		if i == s.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *progressScreen) View(width, height int) string {
	body := tabBodyHeight(height)
	header := s.renderTabs()
	var content string
	switch {
	case s.errMsg != "":
		content = errorStyle.Render("Failed to load progress: " + s.errMsg)
	case s.activeTab == tabHistory && len(s.report.Sessions) == 0:
		content = "No sessions found."
	case s.activeTab == tabHistory:
		s.history.SetHeight(body)
		content = tableMutedStyle.Render(s.history.View())
	default:
		s.viewports[s.activeTab].Height = body
		content = s.viewports[s.activeTab].View()
	}
	return header + "\n" + fitLines(content, width, body)
}
