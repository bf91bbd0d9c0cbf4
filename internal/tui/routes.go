package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/studyflow/internal/model"
)

type route int

const (
	routeLanding route = iota
	routeDiagnostic
	routeResult
	routeDashboard
	routeSession
	routeProgress
	routeLeaderboard
	routeSettings
	routePlan
	routeNotFound
)

var routeNames = map[string]route{
	"landing":     routeLanding,
	"diagnostic":  routeDiagnostic,
	"result":      routeResult,
	"dashboard":   routeDashboard,
	"session":     routeSession,
	"progress":    routeProgress,
	"leaderboard": routeLeaderboard,
	"settings":    routeSettings,
	"plan":        routePlan,
}

// Views lists the view names accepted by Options.Start.
func Views() []string {
	return []string{"landing", "diagnostic", "result", "dashboard", "session", "progress", "leaderboard", "settings", "plan"}
}

func parseRoute(name string) route {
	if r, ok := routeNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return r
	}
	return routeNotFound
}

// navTabs are reachable with the number keys from any view that does not capture input.
var navTabs = []struct {
	key   string
	label string
	to    route
}{
	{"1", "Dashboard", routeDashboard},
	{"2", "Study", routeSession},
	{"3", "Progress", routeProgress},
	{"4", "Leaderboard", routeLeaderboard},
	{"5", "Study Plan", routePlan},
	{"6", "Settings", routeSettings},
}

type navigateMsg struct {
	to      route
	subject string
}

type toastMsg struct {
	text  string
	isErr bool
}

type toastExpiredMsg struct{ id int }

type unlockedMsg struct{ achievements []model.Achievement }

type popupExpiredMsg struct{ id int }

// scoped messages belong to one mounted view and are dropped once it unmounts.
type scoped interface {
	scope() int
}

func navigate(to route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func startSession(subject string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: routeSession, subject: subject} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text} }
}

func notifyErr(prefix string, err error) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: prefix + ": " + err.Error(), isErr: true} }
}

func expireToast(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func expirePopup(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return popupExpiredMsg{id: id} })
}
