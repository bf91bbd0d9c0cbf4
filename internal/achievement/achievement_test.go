package achievement

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
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

func completedSession(id string, start time.Time) model.StudySession {
	return model.StudySession{ID: id, Subject: "Math", Duration: 1500, StartTime: start, Completed: true}
}

func ids(list []model.Achievement) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestEvaluateThresholds(t *testing.T) {
	if got := Evaluate(model.Stats{}, nil, fixedNow); len(got) != 0 {
		t.Fatalf("expected nothing for empty stats, got %v", ids(got))
	}
	got := Evaluate(model.Stats{TotalSessions: 10, Streak: 7}, nil, fixedNow)
	if len(got) != 3 {
		t.Fatalf("expected all three achievements, got %v", ids(got))
	}
	for _, a := range got {
		if !a.UnlockedAt.Equal(fixedNow) {
			t.Fatalf("expected unlock time stamped, got %v", a.UnlockedAt)
		}
	}
	got = Evaluate(model.Stats{TotalSessions: 9, Streak: 6}, nil, fixedNow)
	if len(got) != 1 || got[0].ID != model.AchievementFirstSession {
		t.Fatalf("expected only first_session, got %v", ids(got))
	}
}

func TestEvaluateSkipsUnlocked(t *testing.T) {
	unlocked := []model.Achievement{{ID: model.AchievementFirstSession}}
	got := Evaluate(model.Stats{TotalSessions: 10}, unlocked, fixedNow)
	if len(got) != 1 || got[0].ID != model.AchievementTenSessions {
		t.Fatalf("expected only ten_sessions, got %v", ids(got))
	}
}

func TestCatalogOrder(t *testing.T) {
	got := ids(Catalog())
	want := []string{model.AchievementFirstSession, model.AchievementTenSessions, model.AchievementWeekStreak}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected catalog order %v", got)
		}
	}
}

func TestCheckUnlocksOnce(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	checker := NewChecker(st, func() time.Time { return fixedNow })

	if got, err := checker.Check(ctx); err != nil || len(got) != 0 {
		t.Fatalf("expected nothing without sessions: %v %v", ids(got), err)
	}
	if err := st.SaveSession(ctx, completedSession("a", fixedNow.Add(-time.Hour))); err != nil {
		t.Fatalf("save session: %v", err)
	}
	got, err := checker.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 1 || got[0].ID != model.AchievementFirstSession {
		t.Fatalf("expected first_session, got %v", ids(got))
	}
	got, err = checker.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected idempotent check, got %v", ids(got))
	}
	stored, err := st.GetUnlockedAchievements(ctx)
	if err != nil {
		t.Fatalf("get achievements: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one stored achievement, got %v", ids(stored))
	}
}

func TestCheckKeepsExistingSet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	earlier := model.Achievement{ID: model.AchievementFirstSession, UnlockedAt: fixedNow.Add(-48 * time.Hour)}
	if err := st.SaveUnlockedAchievements(ctx, []model.Achievement{earlier}); err != nil {
		t.Fatalf("save achievements: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := st.SaveSession(ctx, completedSession(string(rune('a'+i)), fixedNow.Add(-time.Hour))); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	checker := NewChecker(st, func() time.Time { return fixedNow })
	if _, err := checker.Check(ctx); err != nil {
		t.Fatalf("check: %v", err)
	}
	stored, err := st.GetUnlockedAchievements(ctx)
	if err != nil {
		t.Fatalf("get achievements: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected two achievements, got %v", ids(stored))
	}
	if !stored[0].UnlockedAt.Equal(earlier.UnlockedAt) {
		t.Fatalf("expected original unlock time preserved, got %v", stored[0].UnlockedAt)
	}
}
