package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/model"
)

const (
	fieldName = iota
	fieldEmail
	fieldUniversity
	fieldCareer
	fieldCurrentAverage
	fieldTargetAverage
)

var settingsLabels = []string{"Name", "Email", "University", "Career", "Current average", "Target average"}

type settingsScreen struct {
	env
	inputs []textinput.Model
	focus  int
	plan   model.Plan
	errMsg string
}

func newSettingsScreen(e env) *settingsScreen {
	s := &settingsScreen{env: e}
	s.inputs = make([]textinput.Model, len(settingsLabels))
	for i, label := range settingsLabels {
		input := textinput.New()
		input.Prompt = fmt.Sprintf("%-17s", label+":")
		input.CharLimit = 80
		input.Cursor.SetMode(cursor.CursorBlink)
		s.inputs[i] = input
	}
	return s
}

func (s *settingsScreen) Init() tea.Cmd {
	profile, _, err := s.store.GetProfile(s.ctx)
	if err != nil {
		s.errMsg = err.Error()
	}
	s.plan = greetingFor(profile).Plan
	s.inputs[fieldName].SetValue(profile.Name)
	s.inputs[fieldEmail].SetValue(profile.Email)
	s.inputs[fieldUniversity].SetValue(profile.University)
	s.inputs[fieldCareer].SetValue(profile.Career)
	if profile.CurrentAverage != 0 {
		s.inputs[fieldCurrentAverage].SetValue(strconv.FormatFloat(profile.CurrentAverage, 'f', -1, 64))
	}
	if profile.TargetAverage != 0 {
		s.inputs[fieldTargetAverage].SetValue(strconv.FormatFloat(profile.TargetAverage, 'f', -1, 64))
	}
	return s.setFocus(0)
}

func (s *settingsScreen) capturing() bool { return true }

func (s *settingsScreen) bindings() []key.Binding {
	return []key.Binding{
		binding("tab/shift+tab", "field"),
		binding("enter", "save"),
		binding("esc", "back"),
	}
}

func (s *settingsScreen) setFocus(idx int) tea.Cmd {
	n := len(s.inputs)
	s.focus = (idx%n + n) % n
	for i := range s.inputs {
		if i != s.focus {
			s.inputs[i].Blur()
		}
	}
	return s.inputs[s.focus].Focus()
}

func (s *settingsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range s.inputs {
			s.inputs[i].Width = max(10, min(msg.Width-lipgloss.Width(s.inputs[i].Prompt)-4, 50))
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navigate(routeDashboard)
		case "tab", "down":
			return s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s.setFocus(s.focus - 1)
		case "enter":
			return s.save()
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

// patch builds the profile fields from the form. Averages must be numbers between 0 and 20.
func (s *settingsScreen) patch() (model.ProfilePatch, error) {
	value := func(i int) *string {
		v := strings.TrimSpace(s.inputs[i].Value())
		return &v
	}
	average := func(i int) (*float64, error) {
		raw := strings.TrimSpace(s.inputs[i].Value())
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 20 {
			return nil, fmt.Errorf("%s must be a number between 0 and 20", strings.ToLower(settingsLabels[i]))
		}
		return &v, nil
	}
	current, err := average(fieldCurrentAverage)
	if err != nil {
		return model.ProfilePatch{}, err
	}
	target, err := average(fieldTargetAverage)
	if err != nil {
		return model.ProfilePatch{}, err
	}
	return model.ProfilePatch{
		Name:           value(fieldName),
		Email:          value(fieldEmail),
		University:     value(fieldUniversity),
		Career:         value(fieldCareer),
		CurrentAverage: current,
		TargetAverage:  target,
	}, nil
}

func (s *settingsScreen) save() tea.Cmd {
	patch, err := s.patch()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := s.store.SaveProfile(s.ctx, patch); err != nil {
		s.errMsg = err.Error()
		return notifyErr("Failed to save profile", err)
	}
	s.errMsg = ""
	return notify("Profile updated")
}

func (s *settingsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s plan", s.plan)))
	b.WriteString("\n\n")
	for i, input := range s.inputs {
		if i == s.focus {
			b.WriteString(accentStyle.Render("› "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(s.errMsg))
		b.WriteString("\n")
	}

	t := s.cfg.Timer
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Study preferences"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"Pomodoro %d min · short break %d min · long break %d min every %d · checkpoint %d min · session goal %d min",
		int(t.Focus.Minutes()), int(t.ShortBreak.Minutes()), int(t.LongBreak.Minutes()), t.LongBreakEvery,
		int(t.Checkpoint.Minutes()), int(t.Target.Minutes()),
	)))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Edit these with `studyflow config`."))
	return b.String()
}
