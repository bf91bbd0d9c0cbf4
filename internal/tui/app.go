// Package tui provides the Bubble Tea study coach interface.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/studyflow/internal/achievement"
	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
	"github.com/verte-zerg/studyflow/internal/tips"
)

const (
	toastTTL = 3 * time.Second
	popupTTL = 5 * time.Second
	maxToast = 3
)

// screen is one mounted view of the app shell.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	// capturing reports whether the view consumes every key, including navigation and quit.
	capturing() bool
	bindings() []key.Binding
}

// env is the shared context handed to each mounted view.
type env struct {
	ctx   context.Context
	store *store.Store
	cfg   model.Config
	now   func() time.Time
	tips  *tips.Generator
	mount int
}

type toast struct {
	id    int
	text  string
	isErr bool
}

// Options controls how the app starts.
type Options struct {
	// Start names the first view. Empty opens the dashboard when a profile exists, else the landing view.
	Start string
	// Now overrides the clock.
	Now func() time.Time
}

// App is the root Bubble Tea model. It routes between views and owns toasts and achievement popups.
type App struct {
	env
	cancel context.CancelFunc

	watcher *achievement.Watcher
	unlocks chan []model.Achievement

	route    route
	screen   screen
	keys     keyMap
	help     help.Model
	showHelp bool

	toasts    []toast
	nextToast int
	popup     []model.Achievement
	popupID   int

	width  int
	height int
}

// NewApp constructs the app shell. Call Close after the program exits.
func NewApp(st *store.Store, cfg model.Config, opts Options) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		env: env{
			ctx:   ctx,
			store: st,
			cfg:   cfg,
			now:   now,
			tips:  tips.New(),
		},
		cancel:  cancel,
		unlocks: make(chan []model.Achievement),
		keys:    defaultKeys(),
		help:    help.New(),
	}
	a.watcher = achievement.NewWatcher(
		achievement.NewChecker(st, now),
		st,
		cfg.Coach.AchievementPoll,
		a.deliverUnlocks,
	)
	a.route = a.startRoute(opts.Start)
	a.screen = a.newScreen(a.route, "")
	return a
}

func (a *App) startRoute(name string) route {
	if strings.TrimSpace(name) != "" {
		return parseRoute(name)
	}
	if _, ok, err := a.store.GetProfile(a.ctx); err == nil && ok {
		return routeDashboard
	}
	return routeLanding
}

// Close stops the achievement watcher and cancels pending work.
func (a *App) Close() {
	a.cancel()
	a.watcher.Stop()
}

func (a *App) deliverUnlocks(list []model.Achievement) {
	select {
	case a.unlocks <- list:
	case <-a.ctx.Done():
	}
}

func waitForUnlock(ctx context.Context, ch <-chan []model.Achievement) tea.Cmd {
	return func() tea.Msg {
		select {
		case list := <-ch:
			return unlockedMsg{achievements: list}
		case <-ctx.Done():
			return nil
		}
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.watcher.Start(a.ctx)
	return tea.Batch(a.screen.Init(), waitForUnlock(a.ctx, a.unlocks))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m, ok := msg.(scoped); ok && m.scope() != a.mount {
		return a, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, a.screen.Update(msg)
	case navigateMsg:
		return a, a.open(msg.to, msg.subject)
	case toastMsg:
		return a, a.pushToast(msg.text, msg.isErr)
	case toastExpiredMsg:
		for i, t := range a.toasts {
			if t.id == msg.id {
				a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
				break
			}
		}
		return a, nil
	case unlockedMsg:
		a.popup = append(a.popup, msg.achievements...)
		a.popupID++
		cmds := []tea.Cmd{
			expirePopup(a.popupID, popupTTL),
			waitForUnlock(a.ctx, a.unlocks),
			a.screen.Update(msg),
		}
		return a, tea.Batch(cmds...)
	case popupExpiredMsg:
		if msg.id == a.popupID {
			a.popup = nil
		}
		return a, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if len(a.popup) > 0 && (msg.String() == "enter" || msg.String() == "esc") {
			a.popup = nil
			return a, nil
		}
		if a.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}
		if !a.screen.capturing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.showHelp = true
				return a, nil
			}
			for _, tab := range navTabs {
				if msg.String() == tab.key {
					if tab.to == a.route {
						return a, nil
					}
					return a, a.open(tab.to, "")
				}
			}
		}
	}
	return a, a.screen.Update(msg)
}

func (a *App) open(to route, subject string) tea.Cmd {
	a.mount++
	a.route = to
	a.showHelp = false
	a.screen = a.newScreen(to, subject)
	cmds := []tea.Cmd{a.screen.Init(), tea.ClearScreen}
	if a.width > 0 && a.height > 0 {
		cmds = append(cmds, a.screen.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height}))
	}
	return tea.Batch(cmds...)
}

func (a *App) newScreen(to route, subject string) screen {
	e := a.env
	switch to {
	case routeLanding:
		return newLandingScreen(e)
	case routeDiagnostic:
		return newDiagnosticScreen(e)
	case routeResult:
		return newResultScreen(e)
	case routeDashboard:
		return newDashboardScreen(e)
	case routeSession:
		return newSessionScreen(e, subject)
	case routeProgress:
		return newProgressScreen(e)
	case routeLeaderboard:
		return newLeaderboardScreen(e)
	case routeSettings:
		return newSettingsScreen(e)
	case routePlan:
		return newPlanScreen(e)
	default:
		return newNotFoundScreen(e)
	}
}

func (a *App) pushToast(text string, isErr bool) tea.Cmd {
	a.nextToast++
	a.toasts = append(a.toasts, toast{id: a.nextToast, text: text, isErr: isErr})
	if len(a.toasts) > maxToast {
		a.toasts = a.toasts[len(a.toasts)-maxToast:]
	}
	return expireToast(a.nextToast, toastTTL)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	if len(a.popup) > 0 {
		return fitLines(renderModal(a.renderPopup(), a.width, a.height), a.width, a.height)
	}
	if a.showHelp {
		return fitLines(renderModal(a.renderHelp(), a.width, a.height), a.width, a.height)
	}
	headerHeight, bodyHeight, footerHeight := a.layoutHeights()
	parts := make([]string, 0, 3)
	if headerHeight > 0 {
		parts = append(parts, fitLines(a.renderHeader(), a.width, headerHeight))
	}
	parts = append(parts, fitLines(a.screen.View(a.width, bodyHeight), a.width, bodyHeight))
	parts = append(parts, fitLines(a.renderFooter(), a.width, footerHeight))
	return strings.Join(parts, "\n")
}

func (a *App) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	if a.showsNav() {
		tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
		if tabsHeight < 1 {
			tabsHeight = 1
		}
		headerHeight = tabsHeight + 1
	}
	footerHeight = 1 + len(a.toasts)
	bodyHeight = a.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (a *App) showsNav() bool {
	for _, tab := range navTabs {
		if tab.to == a.route {
			return true
		}
	}
	return false
}

func (a *App) renderHeader() string {
	parts := make([]string, 0, len(navTabs))
	for _, tab := range navTabs {
		label := tab.key + " " + tab.label
		if tab.to == a.route {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderFooter() string {
	lines := make([]string, 0, len(a.toasts)+1)
	for _, t := range a.toasts {
		if t.isErr {
			lines = append(lines, toastErrorStyle.Render(truncateLine("✗ "+t.text, a.width)))
		} else {
			lines = append(lines, toastStyle.Render(truncateLine("● "+t.text, a.width)))
		}
	}
	bindings := a.screen.bindings()
	if !a.screen.capturing() {
		bindings = append(bindings, a.keys.ShortHelp()...)
	}
	lines = append(lines, a.help.ShortHelpView(bindings))
	return strings.Join(lines, "\n")
}

func (a *App) renderHelp() string {
	groups := [][]key.Binding{a.screen.bindings()}
	groups = append(groups, a.keys.FullHelp()...)
	return titleStyle.Render("Keys") + "\n\n" + a.help.FullHelpView(groups) + "\n\n" + footerStyle.Render("esc to close")
}

func (a *App) renderPopup() string {
	lines := []string{accentStyle.Render("Achievement unlocked!"), ""}
	for _, ach := range a.popup {
		lines = append(lines, titleStyle.Render(ach.Icon+" "+ach.Name))
		lines = append(lines, mutedStyle.Render(ach.Description))
	}
	lines = append(lines, "", footerStyle.Render("enter to close"))
	return strings.Join(lines, "\n")
}
