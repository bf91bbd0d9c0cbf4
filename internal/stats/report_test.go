package stats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/studyflow/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "studyflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s := sessionAt(daysAgo(i, 9), 3600, i != 2)
		if err := st.SaveSession(ctx, s); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, testNow())
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(report.Sessions))
	}
	if report.Stats.TotalSessions != 2 || report.Stats.Streak != 2 {
		t.Fatalf("unexpected stats: %+v", report.Stats)
	}
	if len(report.Daily) != ChartDays {
		t.Fatalf("expected %d daily values, got %d", ChartDays, len(report.Daily))
	}
	if len(report.Subjects) != 1 || report.Subjects[0].Hours != 3 {
		t.Fatalf("expected all sessions in subject hours, got %+v", report.Subjects)
	}

	loaded, err := Load(ctx, st, testNow())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != report.Stats {
		t.Fatalf("expected Load to match report stats: %+v vs %+v", loaded, report.Stats)
	}
}
