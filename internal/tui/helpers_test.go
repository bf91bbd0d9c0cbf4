package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
	"github.com/verte-zerg/studyflow/internal/tips"
)

var fixedNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "studyflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testConfig() model.Config {
	return model.Config{
		Timer: model.TimerConfig{
			Focus:          2 * time.Second,
			ShortBreak:     time.Second,
			LongBreak:      2 * time.Second,
			Checkpoint:     time.Hour,
			Target:         10 * time.Second,
			LongBreakEvery: 4,
		},
		Subject: "Calculus",
	}
}

func testEnv(t *testing.T) env {
	t.Helper()
	return env{
		ctx:   context.Background(),
		store: openTestStore(t),
		cfg:   testConfig(),
		now:   func() time.Time { return fixedNow },
		tips:  tips.NewSeeded(1),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// collect runs cmd and any batched commands, keeping messages produced within a short wait.
// Commands that sleep, such as ticks, are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-out:
	case <-time.After(50 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findToast(msgs []tea.Msg) (toastMsg, bool) {
	for _, m := range msgs {
		if t, ok := m.(toastMsg); ok {
			return t, true
		}
	}
	return toastMsg{}, false
}

func findNavigate(msgs []tea.Msg) (navigateMsg, bool) {
	for _, m := range msgs {
		if n, ok := m.(navigateMsg); ok {
			return n, true
		}
	}
	return navigateMsg{}, false
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
