package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/achievement"
	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/stats"
)

const (
	weeklyGoal            = 15
	defaultName           = "Student"
	defaultUniversity     = "University"
	defaultCurrentAverage = 14.2
	defaultTargetAverage  = 15.8
)

type tipTickMsg struct{ mount int }

func (m tipTickMsg) scope() int { return m.mount }

// greeting is the profile as shown on the dashboard, with placeholders for missing fields.
type greeting struct {
	Name           string
	University     string
	Plan           model.Plan
	CurrentAverage float64
	TargetAverage  float64
}

func greetingFor(p model.UserProfile) greeting {
	g := greeting{
		Name:           p.Name,
		University:     p.University,
		Plan:           p.Plan,
		CurrentAverage: p.CurrentAverage,
		TargetAverage:  p.TargetAverage,
	}
	if g.Name == "" {
		g.Name = defaultName
	}
	if g.University == "" {
		g.University = defaultUniversity
	}
	if g.Plan == "" {
		g.Plan = model.PlanBronze
	}
	if g.CurrentAverage == 0 {
		g.CurrentAverage = defaultCurrentAverage
	}
	if g.TargetAverage == 0 {
		g.TargetAverage = defaultTargetAverage
	}
	return g
}

type dashboardScreen struct {
	env
	greeting     greeting
	stats        model.Stats
	subjects     []model.SubjectHours
	achievements []model.Achievement
	tip          string
	subject      textinput.Model
	errMsg       string
}

func newDashboardScreen(e env) *dashboardScreen {
	input := textinput.New()
	input.Prompt = "Subject: "
	input.Placeholder = "What are you studying today?"
	input.CharLimit = 60
	input.Width = 40
	input.SetValue(e.cfg.Subject)
	return &dashboardScreen{env: e, subject: input}
}

func (s *dashboardScreen) Init() tea.Cmd {
	s.reload()
	s.tip = s.tips.Next()
	return s.scheduleTip()
}

func (s *dashboardScreen) scheduleTip() tea.Cmd {
	interval := s.cfg.Coach.TipInterval
	if interval <= 0 {
		return nil
	}
	mount := s.mount
	return tea.Tick(interval, func(time.Time) tea.Msg { return tipTickMsg{mount: mount} })
}

func (s *dashboardScreen) reload() {
	profile, _, err := s.store.GetProfile(s.ctx)
	if err != nil {
		s.errMsg = err.Error()
	}
	s.greeting = greetingFor(profile)
	sessions, err := s.store.GetSessions(s.ctx)
	if err != nil {
		s.errMsg = err.Error()
	}
	s.stats = stats.Compute(sessions, s.now())
	s.subjects = stats.SubjectHours(sessions, 5)
	s.achievements, err = s.store.GetUnlockedAchievements(s.ctx)
	if err != nil {
		s.errMsg = err.Error()
	}
}

func (s *dashboardScreen) capturing() bool { return s.subject.Focused() }

func (s *dashboardScreen) bindings() []key.Binding {
	if s.subject.Focused() {
		return []key.Binding{binding("enter", "confirm"), binding("esc", "cancel")}
	}
	return []key.Binding{binding("s", "start session"), binding("e", "edit subject"), binding("t", "new tip")}
}

func (s *dashboardScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tipTickMsg:
		s.tip = s.tips.Next()
		return s.scheduleTip()
	case unlockedMsg:
		s.reload()
		return nil
	case tea.KeyMsg:
		if s.subject.Focused() {
			switch msg.String() {
			case "enter", "esc":
				s.subject.Blur()
				return nil
			}
			var cmd tea.Cmd
			s.subject, cmd = s.subject.Update(msg)
			return cmd
		}
		switch msg.String() {
		case "s", "enter":
			return startSession(strings.TrimSpace(s.subject.Value()))
		case "e":
			s.subject.CursorEnd()
			return s.subject.Focus()
		case "t":
			s.tip = s.tips.Next()
		}
	}
	return nil
}

func (s *dashboardScreen) View(width, height int) string {
	g := s.greeting
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Hi, %s! 👋", g.Name)))
	b.WriteString("   ")
	b.WriteString(accentStyle.Render(fmt.Sprintf("🔥 %d-day streak", s.stats.Streak)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s • %s plan", g.University, g.Plan)))
	b.WriteString("\n\n")

	b.WriteString(cardRow(width,
		metricCard("Sessions", fmt.Sprintf("%d", s.stats.TotalSessions)),
		metricCard("Hours", s.stats.TotalHours),
		metricCard("This week", fmt.Sprintf("%d", s.stats.SessionsThisWeek)),
		metricCard("Average", fmt.Sprintf("%.1f → %.1f", g.CurrentAverage, g.TargetAverage)),
	))
	b.WriteString("\n\n")

	done := min(s.stats.SessionsThisWeek, weeklyGoal)
	b.WriteString(titleStyle.Render("Weekly goal"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d sessions", done, weeklyGoal)))
	b.WriteString("\n")
	b.WriteString(progressBar(float64(done)*100/weeklyGoal, max(10, min(width-2, 50))))
	b.WriteString("\n\n")

	b.WriteString(s.subject.View())
	b.WriteString("\n\n")

	left := s.renderSubjects()
	right := s.renderAchievements()
	b.WriteString(cardRow(width, cardStyle.Render(left), cardStyle.Render(right)))
	b.WriteString("\n\n")

	b.WriteString(accentStyle.Render("💡 Tip: "))
	b.WriteString(lipgloss.NewStyle().Width(max(20, min(width-10, 90))).Render(s.tip))
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Failed to load data: " + s.errMsg))
	}
	return b.String()
}

func (s *dashboardScreen) renderSubjects() string {
	lines := []string{titleStyle.Render("Hours by subject")}
	if len(s.subjects) == 0 {
		lines = append(lines, mutedStyle.Render("No sessions yet."))
		return strings.Join(lines, "\n")
	}
	top := s.subjects[0].Hours
	for _, sh := range s.subjects {
		pct := 0.0
		if top > 0 {
			pct = sh.Hours * 100 / top
		}
		lines = append(lines, fmt.Sprintf("%-14s %s %.1f h", truncateLine(sh.Subject, 14), progressBar(pct, 12), sh.Hours))
	}
	return strings.Join(lines, "\n")
}

func (s *dashboardScreen) renderAchievements() string {
	lines := []string{titleStyle.Render("Achievements")}
	unlocked := make(map[string]bool, len(s.achievements))
	for _, a := range s.achievements {
		unlocked[a.ID] = true
	}
	for _, a := range achievement.Catalog() {
		if unlocked[a.ID] {
			lines = append(lines, a.Icon+" "+selectStyle.Render(a.Name))
		} else {
			lines = append(lines, footerStyle.Render("🔒 "+a.Name))
		}
	}
	return strings.Join(lines, "\n")
}
