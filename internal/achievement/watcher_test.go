package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
)

func TestWatcherUnlocksOnSessionWrite(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	checker := NewChecker(st, func() time.Time { return fixedNow })

	unlocked := make(chan []model.Achievement, 4)
	w := NewWatcher(checker, st, time.Hour, func(list []model.Achievement) {
		unlocked <- list
	})
	w.Start(ctx)
	t.Cleanup(w.Stop)

	if err := st.SaveSession(ctx, completedSession("a", fixedNow.Add(-time.Hour))); err != nil {
		t.Fatalf("save session: %v", err)
	}

	select {
	case list := <-unlocked:
		if len(list) != 1 || list[0].ID != model.AchievementFirstSession {
			t.Fatalf("expected first_session, got %v", ids(list))
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for unlock")
	}
}

func TestWatcherChecksOnStart(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SaveSession(ctx, completedSession("a", fixedNow.Add(-time.Hour))); err != nil {
		t.Fatalf("save session: %v", err)
	}
	checker := NewChecker(st, func() time.Time { return fixedNow })
	unlocked := make(chan []model.Achievement, 1)
	w := NewWatcher(checker, st, 0, func(list []model.Achievement) {
		unlocked <- list
	})
	w.Start(ctx)
	defer w.Stop()

	select {
	case <-unlocked:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for initial check")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	w := NewWatcher(NewChecker(st, nil), st, time.Hour, nil)
	w.Stop()
	w.Start(context.Background())
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
