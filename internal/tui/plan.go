package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/studyplan"
)

var planExamples = []string{"Historia del Perú - Incas", "Arquitectura romana", "Cálculo 2 - Integrales"}

type planReadyMsg struct {
	mount int
	plan  model.StudyPlan
	err   error
}

func (m planReadyMsg) scope() int { return m.mount }

type planScreen struct {
	env
	input   textinput.Model
	spinner spinner.Model
	view    viewport.Model
	loading bool
	plan    *model.StudyPlan
	width   int
}

func newPlanScreen(e env) *planScreen {
	input := textinput.New()
	input.Prompt = "Topic: "
	input.Placeholder = planExamples[0]
	input.CharLimit = 100
	input.Width = 50
	return &planScreen{
		env:     e,
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		view:    viewport.New(0, 0),
	}
}

func (s *planScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *planScreen) capturing() bool { return s.input.Focused() || s.loading }

func (s *planScreen) bindings() []key.Binding {
	if s.plan != nil && !s.input.Focused() {
		return []key.Binding{binding("↑/↓", "scroll"), binding("/", "new topic")}
	}
	return []key.Binding{binding("enter", "generate"), binding("esc", "back")}
}

func (s *planScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.view.Width = msg.Width
		s.input.Width = max(10, min(msg.Width-10, 60))
		s.renderPlan()
		return nil
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case planReadyMsg:
		s.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return nil
			}
			s.input.Focus()
			return notifyErr("Failed to generate plan", msg.err)
		}
		plan := msg.plan
		s.plan = &plan
		s.renderPlan()
		s.view.GotoTop()
		return notify("Study plan ready")
	case tea.KeyMsg:
		if s.loading {
			return nil
		}
		if s.input.Focused() {
			switch msg.String() {
			case "enter":
				return s.generate()
			case "esc":
				if s.plan != nil {
					s.input.Blur()
					return nil
				}
				return navigate(routeDashboard)
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		if msg.String() == "/" {
			return s.input.Focus()
		}
		var cmd tea.Cmd
		s.view, cmd = s.view.Update(msg)
		return cmd
	}
	return nil
}

func (s *planScreen) generate() tea.Cmd {
	topic := strings.TrimSpace(s.input.Value())
	if topic == "" {
		return notify("Enter a topic to study")
	}
	s.loading = true
	s.input.Blur()
	gen := studyplan.Generator{Delay: s.cfg.Coach.PlanDelay}
	ctx, mount := s.ctx, s.mount
	run := func() tea.Msg {
		plan, err := gen.Generate(ctx, topic)
		return planReadyMsg{mount: mount, plan: plan, err: err}
	}
	return tea.Batch(s.spinner.Tick, run)
}

func (s *planScreen) renderPlan() {
	if s.plan == nil {
		return
	}
	width := s.width
	if width <= 0 {
		width = fallbackWidth
	}
	var b strings.Builder
	if err := studyplan.Render(&b, *s.plan, min(width, 100)); err != nil {
		s.view.SetContent("Failed to render plan: " + err.Error())
		return
	}
	s.view.SetContent(strings.TrimRight(b.String(), "\n"))
}

func (s *planScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("Study plan generator"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	if s.loading {
		b.WriteString("\n")
		b.WriteString(s.spinner.View() + " Preparing your study plan...")
		return b.String()
	}
	if s.plan == nil {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Try: " + strings.Join(planExamples, " · ")))
		return b.String()
	}
	b.WriteString("\n")
	header := strings.Count(b.String(), "\n")
	s.view.Height = max(1, height-header)
	b.WriteString(s.view.View())
	return b.String()
}
