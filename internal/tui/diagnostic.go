package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/studyflow/internal/diagnostic"
	"github.com/verte-zerg/studyflow/internal/model"
)

const sliderWidth = 20

type diagnosticDoneMsg struct {
	mount int
	err   error
}

func (m diagnosticDoneMsg) scope() int { return m.mount }

type diagnosticScreen struct {
	env
	flow    *diagnostic.Flow
	focus   int
	option  int
	input   textinput.Model
	spinner spinner.Model
}

func newDiagnosticScreen(e env) *diagnosticScreen {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 120
	return &diagnosticScreen{
		env:     e,
		flow:    diagnostic.NewFlow(e.store),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}
}

func (s *diagnosticScreen) Init() tea.Cmd {
	err := s.flow.Restore(s.ctx)
	s.syncFocus()
	if err != nil {
		return notifyErr("Failed to load answers", err)
	}
	return nil
}

func (s *diagnosticScreen) capturing() bool { return true }

func (s *diagnosticScreen) bindings() []key.Binding {
	return []key.Binding{
		binding("↑/↓", "question"),
		binding("←/→", "adjust"),
		binding("space", "select"),
		binding("enter", "next section"),
		binding("alt+1-5", "jump"),
		binding("esc", "back"),
	}
}

func (s *diagnosticScreen) questions() []diagnostic.Question {
	return s.flow.Category().Questions
}

func (s *diagnosticScreen) focused() diagnostic.Question {
	qs := s.questions()
	if s.focus >= len(qs) {
		s.focus = len(qs) - 1
	}
	return qs[s.focus]
}

// syncFocus prepares the option cursor or text input for the focused question.
func (s *diagnosticScreen) syncFocus() {
	q := s.focused()
	s.option = 0
	s.input.Blur()
	answer, _ := s.flow.Answer(q.ID)
	switch q.Type {
	case diagnostic.Radio:
		if i := slices.Index(q.Options, answer.Text); i >= 0 {
			s.option = i
		}
	case diagnostic.Text, diagnostic.Email:
		s.input.Placeholder = q.Placeholder
		s.input.SetValue(answer.Text)
		s.input.CursorEnd()
		s.input.Focus()
	}
}

func (s *diagnosticScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.input.Width = max(10, min(msg.Width-6, 60))
		return nil
	case spinner.TickMsg:
		if !s.flow.Loading() {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case diagnosticDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return nil
			}
			return notifyErr("Failed to save your profile", msg.err)
		}
		return tea.Batch(notify("Diagnostic complete"), navigate(routeResult))
	case tea.KeyMsg:
		if s.flow.Loading() {
			return nil
		}
		return s.handleKey(msg)
	}
	return nil
}

func (s *diagnosticScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "shift+tab":
		if s.focus > 0 {
			s.focus--
			s.syncFocus()
		}
		return nil
	case "down", "tab":
		if s.focus < len(s.questions())-1 {
			s.focus++
			s.syncFocus()
		}
		return nil
	case "enter":
		return s.advance()
	case "esc":
		if s.flow.Current() == 0 {
			return navigate(routeLanding)
		}
		s.flow.GoBack()
		s.focus = 0
		s.syncFocus()
		return nil
	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
		idx := int(msg.String()[len("alt+")] - '1')
		if err := s.flow.JumpTo(idx); err != nil {
			return notify("Finish the previous section first")
		}
		s.focus = 0
		s.syncFocus()
		return nil
	}

	q := s.focused()
	switch q.Type {
	case diagnostic.Slider:
		return s.handleSlider(q, msg)
	case diagnostic.Radio, diagnostic.Checkbox:
		return s.handleOptions(q, msg)
	default:
		before := s.input.Value()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() == before {
			return cmd
		}
		return tea.Batch(cmd, s.record(q.ID, model.TextAnswer(s.input.Value())))
	}
}

func (s *diagnosticScreen) sliderValue(q diagnostic.Question) int {
	if v, ok := s.flow.Answer(q.ID); ok && v.Kind == model.AnswerNumber {
		return int(v.Number)
	}
	return (q.Min + q.Max) / 2
}

func (s *diagnosticScreen) handleSlider(q diagnostic.Question, msg tea.KeyMsg) tea.Cmd {
	value := s.sliderValue(q)
	switch msg.String() {
	case "left", "h":
		value = max(q.Min, value-1)
	case "right", "l":
		value = min(q.Max, value+1)
	case " ", "space":
	default:
		return nil
	}
	return s.record(q.ID, model.NumberAnswer(float64(value)))
}

func (s *diagnosticScreen) handleOptions(q diagnostic.Question, msg tea.KeyMsg) tea.Cmd {
	n := len(q.Options)
	switch msg.String() {
	case "left", "h":
		s.option = (s.option - 1 + n) % n
	case "right", "l":
		s.option = (s.option + 1) % n
	case " ", "space":
		option := q.Options[s.option]
		if q.Type == diagnostic.Checkbox {
			if err := s.flow.ToggleOption(s.ctx, q.ID, option); err != nil {
				return notifyErr("Failed to save answer", err)
			}
			return nil
		}
		return s.record(q.ID, model.TextAnswer(option))
	}
	return nil
}

func (s *diagnosticScreen) record(id int, value model.AnswerValue) tea.Cmd {
	if err := s.flow.RecordAnswer(s.ctx, id, value); err != nil {
		return notifyErr("Failed to save answer", err)
	}
	return nil
}

func (s *diagnosticScreen) advance() tea.Cmd {
	step, err := s.flow.Advance()
	if errors.Is(err, diagnostic.ErrCategoryIncomplete) {
		return notify("Answer every question before continuing")
	}
	if step == diagnostic.StepFinalize {
		s.flow.BeginFinalize()
		s.input.Blur()
		flow, ctx, delay, now, mount := s.flow, s.ctx, s.cfg.Coach.AnalysisDelay, s.now(), s.mount
		finalize := func() tea.Msg {
			return diagnosticDoneMsg{mount: mount, err: flow.Finalize(ctx, delay, now)}
		}
		return tea.Batch(s.spinner.Tick, finalize)
	}
	s.focus = 0
	s.syncFocus()
	return nil
}

func (s *diagnosticScreen) View(width, height int) string {
	if s.flow.Loading() {
		return fmt.Sprintf("%s Analyzing your answers...\n\n%s", s.spinner.View(),
			mutedStyle.Render("Building your study profile."))
	}
	var b strings.Builder
	cats := diagnostic.Categories()
	current := s.flow.Current()
	answered, total := s.flow.Progress()

	b.WriteString(accentStyle.Render("Diagnostic"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  section %d of %d", current+1, len(cats))))
	b.WriteString("\n")
	b.WriteString(progressBar(float64(answered)*100/float64(total), max(10, min(width-16, 40))))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d/%d answered", answered, total)))
	b.WriteString("\n\n")
	b.WriteString(s.renderStepper())
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(cats[current].Name))
	b.WriteString("\n\n")

	for i, q := range s.questions() {
		if i == s.focus {
			b.WriteString(selectStyle.Render("› " + q.Prompt))
			b.WriteString("\n")
			b.WriteString(s.renderInput(q, width))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(mutedStyle.Render(truncateLine("  "+q.Prompt, max(10, width-24))))
		b.WriteString("  ")
		b.WriteString(s.renderSummary(q))
		b.WriteString("\n")
	}
	if s.flow.IsLast() {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("enter to see your results"))
	}
	return b.String()
}

func (s *diagnosticScreen) renderStepper() string {
	cats := diagnostic.Categories()
	parts := make([]string, 0, len(cats))
	for i, c := range cats {
		label := strconv.Itoa(i+1) + " " + c.Name
		switch {
		case i == s.flow.Current():
			parts = append(parts, accentStyle.Render("● "+label))
		case s.flow.IsCategoryComplete(i):
			parts = append(parts, successStyle.Render("✓ "+label))
		case s.flow.CanJumpTo(i):
			parts = append(parts, "○ "+label)
		default:
			parts = append(parts, footerStyle.Render("· "+label))
		}
	}
	return strings.Join(parts, "  ")
}

func (s *diagnosticScreen) renderInput(q diagnostic.Question, width int) string {
	switch q.Type {
	case diagnostic.Slider:
		value := s.sliderValue(q)
		_, answered := s.flow.Answer(q.ID)
		span := max(1, q.Max-q.Min)
		pos := (value - q.Min) * sliderWidth / span
		bar := barFillStyle.Render(strings.Repeat("━", pos)) + selectStyle.Render("●") +
			barEmptyStyle.Render(strings.Repeat("─", sliderWidth-pos))
		label := fmt.Sprintf(" %d %s", value, q.Unit)
		if !answered {
			label += mutedStyle.Render("  (not answered)")
		}
		return fmt.Sprintf("  %d %s %d%s", q.Min, bar, q.Max, label)
	case diagnostic.Radio, diagnostic.Checkbox:
		answer, _ := s.flow.Answer(q.ID)
		lines := make([]string, 0, len(q.Options))
		for i, opt := range q.Options {
			mark := "( )"
			if q.Type == diagnostic.Checkbox {
				mark = "[ ]"
				if slices.Contains(answer.List, opt) {
					mark = "[x]"
				}
			} else if answer.Kind == model.AnswerText && answer.Text == opt {
				mark = "(•)"
			}
			line := truncateLine(mark+" "+opt, max(10, width-4))
			if i == s.option {
				lines = append(lines, "  "+selectStyle.Render(line))
			} else {
				lines = append(lines, "  "+mutedStyle.Render(line))
			}
		}
		return strings.Join(lines, "\n")
	default:
		return "  " + s.input.View()
	}
}

func (s *diagnosticScreen) renderSummary(q diagnostic.Question) string {
	v, ok := s.flow.Answer(q.ID)
	if !ok || !v.Defined() || (v.Kind == model.AnswerText && v.Text == "") {
		return footerStyle.Render("—")
	}
	if v.Kind == model.AnswerList && len(v.List) == 0 {
		return successStyle.Render("none")
	}
	return successStyle.Render(truncateLine(v.String(), 30))
}
