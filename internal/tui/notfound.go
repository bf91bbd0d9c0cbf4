package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type notFoundScreen struct {
	env
}

func newNotFoundScreen(e env) *notFoundScreen {
	return &notFoundScreen{env: e}
}

func (s *notFoundScreen) Init() tea.Cmd { return nil }

func (s *notFoundScreen) capturing() bool { return false }

func (s *notFoundScreen) bindings() []key.Binding {
	return []key.Binding{binding("enter", "back home")}
}

func (s *notFoundScreen) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		return navigate(routeLanding)
	}
	return nil
}

func (s *notFoundScreen) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		accentStyle.Render("404"),
		mutedStyle.Render("Oops! Page not found"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
