package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type planCard struct {
	name        string
	badge       string
	features    []string
	notIncluded []string
}

var planCards = []planCard{
	{
		name: "Bronze",
		features: []string{
			"15 sessions a month",
			"Personalized diagnostic",
			"Basic Pomodoro timer",
			"Weekly statistics",
			"Email support",
		},
		notIncluded: []string{"Advanced adaptive coaching", "Integrations", "Monthly reports"},
	},
	{
		name:  "Silver",
		badge: "Most popular",
		features: []string{
			"Unlimited sessions",
			"Full adaptive coaching",
			"Advanced Pomodoro timer",
			"Real-time statistics",
			"Calendar integration",
			"Priority support",
			"Monthly reports",
		},
	},
	{
		name:  "Gold",
		badge: "Best value",
		features: []string{
			"Everything in Silver",
			"Personal coach",
			"Predictive analysis",
			"Exclusive community",
			"Peer comparison",
			"Achievement certificates",
			"24/7 support",
		},
	},
}

var landingSteps = []struct{ title, body string }{
	{"Diagnostic (5 min)", "Find out what kind of procrastinator you are"},
	{"Personal plan", "Two-hour sessions shaped around how you learn"},
	{"Smart tracking", "Your coach adapts with every session"},
}

type landingScreen struct {
	env
}

func newLandingScreen(e env) *landingScreen {
	return &landingScreen{env: e}
}

func (s *landingScreen) Init() tea.Cmd { return nil }

func (s *landingScreen) capturing() bool { return false }

func (s *landingScreen) bindings() []key.Binding {
	return []key.Binding{binding("enter", "start free diagnostic"), binding("d", "dashboard")}
}

func (s *landingScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "enter":
		return navigate(routeDiagnostic)
	case "d":
		return navigate(routeDashboard)
	}
	return nil
}

func (s *landingScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("StudyFlow"))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Stop procrastinating. Start passing."))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("A personal study coach that turns putting things off into focused hours."))
	b.WriteString("\n\n")

	for i, step := range landingSteps {
		b.WriteString(selectStyle.Render(string(rune('1'+i)) + ". " + step.title))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(step.body))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cards := make([]string, 0, len(planCards))
	for _, p := range planCards {
		cards = append(cards, renderPlanCard(p))
	}
	b.WriteString(cardRow(width, cards...))
	return b.String()
}

func renderPlanCard(p planCard) string {
	lines := []string{titleStyle.Render(p.name)}
	if p.badge != "" {
		lines = append(lines, accentStyle.Render(p.badge))
	}
	lines = append(lines, "")
	for _, f := range p.features {
		lines = append(lines, successStyle.Render("✓ ")+f)
	}
	for _, f := range p.notIncluded {
		lines = append(lines, mutedStyle.Render("✗ "+f))
	}
	return cardStyle.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
