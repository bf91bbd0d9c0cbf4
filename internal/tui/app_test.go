package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/studyflow/internal/model"
)

func newTestApp(t *testing.T, start string) *App {
	t.Helper()
	st := openTestStore(t)
	app := NewApp(st, testConfig(), Options{Start: start, Now: func() time.Time { return fixedNow }})
	t.Cleanup(app.Close)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app
}

func TestStartRoute(t *testing.T) {
	app := newTestApp(t, "")
	if app.route != routeLanding {
		t.Fatalf("expected landing without a profile, got %v", app.route)
	}

	name := "Ana"
	if err := app.store.SaveProfile(context.Background(), model.ProfilePatch{Name: &name}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	again := NewApp(app.store, testConfig(), Options{})
	t.Cleanup(again.Close)
	if again.route != routeDashboard {
		t.Fatalf("expected dashboard with a profile, got %v", again.route)
	}

	if r := newTestApp(t, "nowhere").route; r != routeNotFound {
		t.Fatalf("expected not found for an unknown view, got %v", r)
	}
	if r := newTestApp(t, " Progress ").route; r != routeProgress {
		t.Fatalf("expected progress, got %v", r)
	}
}

func TestNavigateRemounts(t *testing.T) {
	app := newTestApp(t, "dashboard")
	before := app.mount
	app.Update(navigateMsg{to: routeSession, subject: "Physics"})
	if app.route != routeSession || app.mount != before+1 {
		t.Fatalf("expected session mounted, got route %v mount %d", app.route, app.mount)
	}
	sess, ok := app.screen.(*sessionScreen)
	if !ok {
		t.Fatalf("expected session screen, got %T", app.screen)
	}
	if sess.session.Subject() != "Physics" {
		t.Fatalf("expected subject from navigation, got %q", sess.session.Subject())
	}
}

func TestNumberKeysSwitchViews(t *testing.T) {
	app := newTestApp(t, "dashboard")
	app.Update(keyRunes("3"))
	if app.route != routeProgress {
		t.Fatalf("expected progress after 3, got %v", app.route)
	}
	app.Update(keyRunes("4"))
	if app.route != routeLeaderboard {
		t.Fatalf("expected leaderboard after 4, got %v", app.route)
	}

	// The session view captures keys, so digits do not navigate away.
	app.Update(keyRunes("2"))
	app.Update(keyRunes("1"))
	if app.route != routeSession {
		t.Fatalf("expected session to keep focus, got %v", app.route)
	}
}

func TestStaleScopedMessagesDropped(t *testing.T) {
	app := newTestApp(t, "session")
	old := app.mount
	app.Update(navigateMsg{to: routeSession})
	sess := app.screen.(*sessionScreen)
	sess.session.Resume()

	_, cmd := app.Update(sessionTickMsg{mount: old})
	if cmd != nil || sess.session.Elapsed() != 0 {
		t.Fatalf("expected stale tick to be ignored")
	}
	app.Update(sessionTickMsg{mount: app.mount})
	if sess.session.Elapsed() != time.Second {
		t.Fatalf("expected current tick to advance the clock, got %v", sess.session.Elapsed())
	}
}

func TestToastsExpire(t *testing.T) {
	app := newTestApp(t, "dashboard")
	app.Update(toastMsg{text: "Profile updated"})
	app.Update(toastMsg{text: "boom", isErr: true})
	if len(app.toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(app.toasts))
	}
	if view := app.View(); !containsAll(view, []string{"Profile updated", "boom"}) {
		t.Fatalf("expected toasts in the footer")
	}
	app.Update(toastExpiredMsg{id: app.toasts[0].id})
	if len(app.toasts) != 1 || app.toasts[0].text != "boom" {
		t.Fatalf("expected only the second toast left, got %+v", app.toasts)
	}
	for i := 0; i < maxToast+2; i++ {
		app.Update(toastMsg{text: "x"})
	}
	if len(app.toasts) != maxToast {
		t.Fatalf("expected toasts capped at %d, got %d", maxToast, len(app.toasts))
	}
}

func TestAchievementPopup(t *testing.T) {
	app := newTestApp(t, "dashboard")
	unlocked := []model.Achievement{{ID: model.AchievementFirstSession, Name: "First Session", Icon: "🎯", Description: "Complete your first session"}}
	app.Update(unlockedMsg{achievements: unlocked})
	if !strings.Contains(app.View(), "First Session") {
		t.Fatalf("expected popup to show the achievement")
	}

	stale := app.popupID - 1
	app.Update(popupExpiredMsg{id: stale})
	if len(app.popup) == 0 {
		t.Fatalf("expected stale expiry to keep the popup")
	}
	app.Update(popupExpiredMsg{id: app.popupID})
	if len(app.popup) != 0 {
		t.Fatalf("expected popup dismissed after expiry")
	}

	app.Update(unlockedMsg{achievements: unlocked})
	app.Update(keyEnter)
	if len(app.popup) != 0 {
		t.Fatalf("expected enter to dismiss the popup")
	}
}

func TestWatcherDeliversUnlocks(t *testing.T) {
	app := newTestApp(t, "dashboard")
	app.Init()

	session := model.StudySession{ID: "s1", Subject: "Math", Duration: 600, StartTime: fixedNow.Add(-time.Hour), EndTime: fixedNow, Completed: true}
	if err := app.store.SaveSession(context.Background(), session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	msg := waitForUnlock(app.ctx, app.unlocks)()
	got, ok := msg.(unlockedMsg)
	if !ok || len(got.achievements) != 1 || got.achievements[0].ID != model.AchievementFirstSession {
		t.Fatalf("expected first session unlock, got %#v", msg)
	}
}

func TestHelpOverlay(t *testing.T) {
	app := newTestApp(t, "progress")
	app.Update(keyRunes("?"))
	if !app.showHelp || !strings.Contains(app.View(), "Keys") {
		t.Fatalf("expected help overlay")
	}
	app.Update(keyEsc)
	if app.showHelp {
		t.Fatalf("expected esc to close help")
	}
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(t, "leaderboard")
	_, cmd := app.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
