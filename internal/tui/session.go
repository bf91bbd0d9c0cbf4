package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/timer"
)

type sessionTickMsg struct{ mount int }

func (m sessionTickMsg) scope() int { return m.mount }

var ratings = []struct {
	rating timer.Rating
	label  string
}{
	{timer.RatingYes, "Yes, completely"},
	{timer.RatingPartial, "Partially"},
	{timer.RatingNo, "No"},
}

type sessionScreen struct {
	env
	session *timer.Session

	notes        textarea.Model
	editingNotes bool

	reflection  textarea.Model
	rating      int
	finishFocus int

	moodCursor int
	notice     string
}

func newSessionScreen(e env, subject string) *sessionScreen {
	if subject == "" {
		subject = e.cfg.Subject
	}
	notes := textarea.New()
	notes.Placeholder = "Jot down ideas, formulas, doubts..."
	notes.ShowLineNumbers = false
	notes.SetHeight(4)

	reflection := textarea.New()
	reflection.Placeholder = "What did you learn today?"
	reflection.ShowLineNumbers = false
	reflection.SetHeight(3)

	return &sessionScreen{
		env:        e,
		session:    timer.New(e.cfg.Timer, subject, e.now()),
		notes:      notes,
		reflection: reflection,
		moodCursor: 2,
	}
}

func (s *sessionScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *sessionScreen) tick() tea.Cmd {
	mount := s.mount
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return sessionTickMsg{mount: mount} })
}

func (s *sessionScreen) capturing() bool { return true }

func (s *sessionScreen) bindings() []key.Binding {
	switch {
	case s.editingNotes:
		return []key.Binding{binding("esc", "done editing")}
	case s.session.Prompt() == timer.PromptMood:
		return []key.Binding{binding("←/→", "choose"), binding("enter", "select"), binding("esc", "skip")}
	case s.session.Prompt() == timer.PromptFinish:
		return []key.Binding{binding("←/→", "rating"), binding("tab", "reflection"), binding("ctrl+s", "save"), binding("esc", "cancel")}
	case s.session.Prompt() == timer.PromptQuit:
		return []key.Binding{binding("y", "discard session"), binding("n", "keep studying")}
	}
	return []key.Binding{
		binding("space", "start/pause"),
		binding("s", "skip phase"),
		binding("n", "notes"),
		binding("1-3", "checklist"),
		binding("f", "finish"),
		binding("q", "leave"),
	}
}

func (s *sessionScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(20, min(msg.Width-4, 80))
		s.notes.SetWidth(w)
		s.reflection.SetWidth(max(20, modalInnerWidth(msg.Width)))
		return nil
	case sessionTickMsg:
		return tea.Batch(s.onTick(), s.tick())
	case tea.KeyMsg:
		switch {
		case s.editingNotes:
			return s.updateNotes(msg)
		case s.session.Prompt() == timer.PromptMood:
			return s.updateMood(msg)
		case s.session.Prompt() == timer.PromptFinish:
			return s.updateFinish(msg)
		case s.session.Prompt() == timer.PromptQuit:
			return s.updateQuit(msg)
		}
		return s.updateRunning(msg)
	}
	return nil
}

func (s *sessionScreen) onTick() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range s.session.Tick() {
		title, body := ev.Message()
		s.notice = title
		if ev.Kind == timer.Checkpoint {
			s.moodCursor = 2
			continue
		}
		cmds = append(cmds, notify(title+" "+body))
	}
	return tea.Batch(cmds...)
}

func (s *sessionScreen) updateRunning(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case " ", "space":
		s.session.Toggle()
	case "s":
		s.session.Skip()
	case "n":
		s.editingNotes = true
		s.notes.SetValue(s.session.Notes())
		return s.notes.Focus()
	case "1", "2", "3":
		s.session.ToggleTask(int(msg.String()[0] - '1'))
	case "f":
		s.session.RequestFinish()
		s.rating = 0
		s.finishFocus = 0
		s.reflection.Reset()
	case "q", "esc":
		s.session.RequestQuit()
	}
	return nil
}

func (s *sessionScreen) updateNotes(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		s.editingNotes = false
		s.notes.Blur()
		s.session.SetNotes(s.notes.Value())
		return nil
	}
	var cmd tea.Cmd
	s.notes, cmd = s.notes.Update(msg)
	s.session.SetNotes(s.notes.Value())
	return cmd
}

func (s *sessionScreen) updateMood(msg tea.KeyMsg) tea.Cmd {
	n := len(timer.Moods)
	switch msg.String() {
	case "left", "h":
		s.moodCursor = (s.moodCursor - 1 + n) % n
	case "right", "l":
		s.moodCursor = (s.moodCursor + 1) % n
	case "1", "2", "3", "4", "5":
		s.moodCursor = int(msg.String()[0] - '1')
		return s.selectMood()
	case "enter", " ", "space":
		return s.selectMood()
	case "esc":
		_ = s.session.DismissMood()
	}
	return nil
}

func (s *sessionScreen) selectMood() tea.Cmd {
	mood := timer.Moods[s.moodCursor]
	if err := s.session.SelectMood(mood.Label); err != nil {
		return nil
	}
	return notify("Mood recorded: " + mood.Emoji + " " + mood.Label)
}

func (s *sessionScreen) updateFinish(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.reflection.Blur()
		_ = s.session.CancelFinish()
		return nil
	case "ctrl+s":
		return s.finish()
	case "tab", "shift+tab":
		if s.finishFocus == 0 {
			s.finishFocus = 1
			return s.reflection.Focus()
		}
		s.finishFocus = 0
		s.reflection.Blur()
		return nil
	}
	if s.finishFocus == 1 {
		var cmd tea.Cmd
		s.reflection, cmd = s.reflection.Update(msg)
		return cmd
	}
	switch msg.String() {
	case "left", "h":
		s.rating = (s.rating - 1 + len(ratings)) % len(ratings)
	case "right", "l":
		s.rating = (s.rating + 1) % len(ratings)
	case "y":
		s.rating = 0
	case "p":
		s.rating = 1
	case "n":
		s.rating = 2
	case "enter":
		return s.finish()
	}
	return nil
}

func (s *sessionScreen) finish() tea.Cmd {
	record, err := s.session.Finish(ratings[s.rating].rating, s.reflection.Value(), s.now())
	if err != nil {
		return nil
	}
	s.reflection.Blur()
	if err := s.store.SaveSession(s.ctx, record); err != nil {
		return notifyErr("Failed to save session", err)
	}
	text := fmt.Sprintf("Session saved: %s, %d min", record.Subject, record.Duration/60)
	return tea.Batch(notify(text), navigate(routeDashboard))
}

func (s *sessionScreen) updateQuit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		if err := s.session.ConfirmQuit(); err != nil {
			return nil
		}
		return tea.Batch(notify("Session discarded"), navigate(routeDashboard))
	case "n", "esc":
		_ = s.session.CancelQuit()
	}
	return nil
}

func (s *sessionScreen) View(width, height int) string {
	switch s.session.Prompt() {
	case timer.PromptMood:
		return renderModal(s.renderMood(), width, height)
	case timer.PromptFinish:
		return renderModal(s.renderFinish(), width, height)
	case timer.PromptQuit:
		return renderModal(s.renderQuit(), width, height)
	}

	sess := s.session
	var b strings.Builder
	b.WriteString(titleStyle.Render(sess.Subject()))
	b.WriteString("   ")
	b.WriteString(accentStyle.Render(sess.Phase().String()))
	if !sess.Running() {
		b.WriteString(mutedStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n")

	clock := lipgloss.NewStyle().Foreground(textColor).Bold(true).Padding(0, 2).
		Border(lipgloss.RoundedBorder(), true).BorderForeground(accentColor).
		Render(formatClock(int(sess.Remaining() / time.Second)))
	b.WriteString(clock)
	b.WriteString("\n")
	phasePct := 0.0
	if total := sess.PhaseLength(); total > 0 {
		phasePct = float64(total-sess.Remaining()) * 100 / float64(total)
	}
	b.WriteString(progressBar(phasePct, 30))
	b.WriteString("\n\n")

	elapsedMin := int(sess.Elapsed() / time.Minute)
	b.WriteString(cardRow(width,
		metricCard("Pomodoros", fmt.Sprintf("%d", sess.Pomodoros())),
		metricCard("Elapsed", fmt.Sprintf("%d min", elapsedMin)),
		metricCard("Session goal", fmt.Sprintf("%.0f%%", sess.ProgressPercent())),
	))
	b.WriteString("\n")
	b.WriteString(progressBar(sess.ProgressPercent(), max(10, min(width-2, 50))))
	b.WriteString("\n")
	if sess.ShowBanner() {
		b.WriteString(accentStyle.Render("Only 10 minutes left. You've got this! 💪"))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString(mutedStyle.Render(s.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Checklist"))
	b.WriteString("\n")
	for i, item := range sess.Checklist() {
		mark := "[ ]"
		style := lipgloss.NewStyle()
		if item.Done {
			mark = "[x]"
			style = successStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d %s %s", i+1, mark, item.Text)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Notes"))
	b.WriteString("\n")
	if s.editingNotes {
		b.WriteString(s.notes.View())
	} else if notes := strings.TrimSpace(sess.Notes()); notes != "" {
		b.WriteString(lipgloss.NewStyle().Width(max(20, min(width-2, 80))).Render(notes))
	} else {
		b.WriteString(footerStyle.Render("press n to take notes"))
	}
	return b.String()
}

func (s *sessionScreen) renderMood() string {
	parts := make([]string, 0, len(timer.Moods))
	for i, m := range timer.Moods {
		label := m.Emoji + " " + m.Label
		if i == s.moodCursor {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return strings.Join([]string{
		accentStyle.Render("Emotional checkpoint"),
		"How are you feeling right now?",
		"",
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	}, "\n")
}

func (s *sessionScreen) renderFinish() string {
	opts := make([]string, 0, len(ratings))
	for i, r := range ratings {
		if i == s.rating {
			opts = append(opts, selectStyle.Render("(•) "+r.label))
		} else {
			opts = append(opts, mutedStyle.Render("( ) "+r.label))
		}
	}
	lines := []string{
		accentStyle.Render("Finish session"),
		fmt.Sprintf("%s · %d min · %d pomodoros", s.session.Subject(), int(s.session.Elapsed()/time.Minute), s.session.Pomodoros()),
		"",
		"Did you reach your goal?",
		strings.Join(opts, "  "),
		"",
		"What did you learn? (optional)",
		s.reflection.View(),
	}
	return strings.Join(lines, "\n")
}

func (s *sessionScreen) renderQuit() string {
	return strings.Join([]string{
		accentStyle.Render("Leave this session?"),
		"",
		fmt.Sprintf("You're already %.0f%% through this session. Give it 5 more minutes?", s.session.ProgressPercent()),
		"Your progress in this session will not be saved.",
		"",
		footerStyle.Render("y to discard · n to keep studying"),
	}, "\n")
}
