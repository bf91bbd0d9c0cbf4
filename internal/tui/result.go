package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/diagnostic"
)

type resultScreen struct {
	env
	result diagnostic.Result
}

func newResultScreen(e env) *resultScreen {
	return &resultScreen{env: e}
}

// Init analyzes the stored answers, or sends the user back to the questionnaire when there are none.
func (s *resultScreen) Init() tea.Cmd {
	stored, err := s.store.GetDiagnosticAnswers(s.ctx)
	if err != nil {
		return notifyErr("Failed to load answers", err)
	}
	if len(stored) == 0 {
		return navigate(routeDiagnostic)
	}
	s.result = diagnostic.Analyze(diagnostic.AnswerMap(stored))
	return nil
}

func (s *resultScreen) capturing() bool { return false }

func (s *resultScreen) bindings() []key.Binding {
	return []key.Binding{binding("enter", "go to dashboard"), binding("r", "retake")}
}

func (s *resultScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "enter":
		return navigate(routeDashboard)
	case "r":
		if err := s.store.ClearDiagnostic(s.ctx); err != nil {
			return notifyErr("Failed to clear answers", err)
		}
		return navigate(routeDiagnostic)
	}
	return nil
}

func (s *resultScreen) View(width, height int) string {
	if s.result.Archetype == "" {
		return mutedStyle.Render("Loading your profile...")
	}
	r := s.result
	var b strings.Builder
	b.WriteString(mutedStyle.Render("Your procrastination profile"))
	b.WriteString("\n")
	b.WriteString(accentStyle.Render(r.Archetype))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(20, min(width-2, 80))).Render(r.Description))
	b.WriteString("\n")
	if r.Perfectionism {
		b.WriteString(mutedStyle.Render("Perfectionism is holding you back: done beats perfect."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Habit radar"))
	b.WriteString("\n")
	labelWidth := 0
	for _, sc := range r.Radar {
		labelWidth = max(labelWidth, lipgloss.Width(sc.Label))
	}
	for _, sc := range r.Radar {
		b.WriteString(fmt.Sprintf("%-*s ", labelWidth, sc.Label))
		b.WriteString(progressBar(float64(sc.Value), 20))
		b.WriteString(fmt.Sprintf(" %3d", sc.Value))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	strengths := bulletList("Strengths", r.Strengths, successStyle.Render("+ "))
	challenges := bulletList("Challenges", r.Challenges, errorStyle.Render("- "))
	b.WriteString(cardRow(width, cardStyle.Render(strengths), cardStyle.Render(challenges)))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Recommended plan: "))
	b.WriteString(accentStyle.Render(string(r.RecommendedPlan)))
	return b.String()
}

func bulletList(title string, items []string, bullet string) string {
	lines := []string{titleStyle.Render(title)}
	for _, item := range items {
		lines = append(lines, bullet+item)
	}
	return strings.Join(lines, "\n")
}
