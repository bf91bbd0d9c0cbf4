package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
)

var testZone = time.FixedZone("UTC-5", -5*3600)

func testNow() time.Time {
	return time.Date(2024, 5, 10, 15, 0, 0, 0, testZone)
}

func sessionAt(t time.Time, seconds int, completed bool) model.StudySession {
	return model.StudySession{
		Subject:   "Math",
		Duration:  seconds,
		StartTime: t,
		EndTime:   t.Add(time.Duration(seconds) * time.Second),
		Completed: completed,
	}
}

func daysAgo(n int, hour int) time.Time {
	now := testNow()
	return time.Date(now.Year(), now.Month(), now.Day()-n, hour, 0, 0, 0, testZone)
}

func TestComputeEmpty(t *testing.T) {
	st := Compute(nil, testNow())
	if st.TotalSessions != 0 || st.Streak != 0 || st.SessionsThisWeek != 0 {
		t.Fatalf("expected zero stats, got %+v", st)
	}
	if st.TotalHours != "0.0" {
		t.Fatalf("expected 0.0 hours, got %q", st.TotalHours)
	}
}

func TestComputeCountsOnlyCompleted(t *testing.T) {
	sessions := []model.StudySession{
		sessionAt(daysAgo(0, 9), 1800, true),
		sessionAt(daysAgo(0, 10), 99999, false),
		sessionAt(daysAgo(1, 9), 3600, true),
		{Subject: "", Duration: -5, Completed: false},
	}
	st := Compute(sessions, testNow())
	if st.TotalSessions != 2 {
		t.Fatalf("expected 2 completed sessions, got %d", st.TotalSessions)
	}
	if st.TotalHours != "1.5" {
		t.Fatalf("expected 1.5 hours, got %q", st.TotalHours)
	}
}

func TestComputeWeekBoundaryExclusive(t *testing.T) {
	now := testNow()
	sessions := []model.StudySession{
		sessionAt(now.Add(-week), 60, true),
		sessionAt(now.Add(-week+time.Second), 60, true),
		sessionAt(now.Add(-time.Hour), 60, true),
	}
	st := Compute(sessions, now)
	if st.SessionsThisWeek != 2 {
		t.Fatalf("expected 2 sessions this week, got %d", st.SessionsThisWeek)
	}
}

func TestStreak(t *testing.T) {
	cases := []struct {
		name string
		days []int
		want int
	}{
		{name: "empty", days: nil, want: 0},
		{name: "today", days: []int{0}, want: 1},
		{name: "today twice", days: []int{0, 0}, want: 1},
		{name: "today and yesterday", days: []int{0, 1}, want: 2},
		{name: "gap after today", days: []int{0, 2}, want: 1},
		{name: "yesterday only", days: []int{1}, want: 0},
		{name: "unsorted input", days: []int{1, 0}, want: 2},
		// Each date is measured from the previous match, so the chain stops after two days.
		{name: "three consecutive days", days: []int{0, 1, 2}, want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sessions []model.StudySession
			for i, d := range tc.days {
				sessions = append(sessions, sessionAt(daysAgo(d, 8+i), 600, true))
			}
			if got := Streak(sessions, testNow()); got != tc.want {
				t.Fatalf("expected streak %d, got %d", tc.want, got)
			}
		})
	}
}

func TestStreakIgnoresIncompleteViaCompute(t *testing.T) {
	sessions := []model.StudySession{
		sessionAt(daysAgo(0, 9), 600, false),
		sessionAt(daysAgo(1, 9), 600, true),
	}
	if got := Compute(sessions, testNow()).Streak; got != 0 {
		t.Fatalf("expected streak 0 without a completed session today, got %d", got)
	}
}

func TestSubjectHoursTopAndRounding(t *testing.T) {
	var sessions []model.StudySession
	for i, subject := range []string{"A", "B", "C", "D", "E", "F"} {
		s := sessionAt(daysAgo(0, 9), (i+1)*3600, i%2 == 0)
		s.Subject = subject
		sessions = append(sessions, s)
	}
	extra := sessionAt(daysAgo(0, 9), 1080, true)
	extra.Subject = "A"
	sessions = append(sessions, extra)

	got := SubjectHours(sessions, 0)
	if len(got) != 5 {
		t.Fatalf("expected top 5 subjects, got %d", len(got))
	}
	if got[0].Subject != "F" || got[0].Hours != 6 {
		t.Fatalf("expected F first with 6h, got %+v", got[0])
	}
	for _, s := range got {
		if s.Subject == "A" {
			t.Fatalf("expected A to fall outside the top 5, got %+v", got)
		}
	}

	got = SubjectHours(sessions, 10)
	last := got[len(got)-1]
	if last.Subject != "A" || last.Hours != 1.3 {
		t.Fatalf("expected A rounded to 1.3h, got %+v", last)
	}
}

func TestDailyHours(t *testing.T) {
	sessions := []model.StudySession{
		sessionAt(daysAgo(0, 9), 3600, true),
		sessionAt(daysAgo(0, 11), 1800, true),
		sessionAt(daysAgo(2, 9), 7200, true),
		sessionAt(daysAgo(3, 9), 7200, false),
		sessionAt(daysAgo(9, 9), 7200, true),
	}
	got := DailyHours(sessions, testNow(), 7)
	if len(got) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got))
	}
	if got[6] != 1.5 {
		t.Fatalf("expected 1.5h today, got %v", got[6])
	}
	if got[4] != 2 {
		t.Fatalf("expected 2h two days ago, got %v", got[4])
	}
	if got[3] != 0 {
		t.Fatalf("expected incomplete session ignored, got %v", got[3])
	}
}

func TestSparklineScalesFromZero(t *testing.T) {
	if got := Sparkline([]float64{0, 0}); got != "  " {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	got := Sparkline([]float64{0, 1, 2})
	if got[0] != ' ' || got[2] != '@' {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRenderSummaryAndHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.Stats{TotalSessions: 3, TotalHours: "2.5", SessionsThisWeek: 1, Streak: 1}); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Hours: 2.5") || !strings.Contains(out, "Streak: 1 day\n") {
		t.Fatalf("unexpected summary: %q", out)
	}

	buf.Reset()
	sessions := []model.StudySession{
		sessionAt(daysAgo(1, 9), 1500, true),
		sessionAt(daysAgo(0, 9), 3000, false),
	}
	if err := RenderHistory(&buf, sessions, 0); err != nil {
		t.Fatalf("render history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[2], "incomplete") || !strings.Contains(lines[3], "completed") {
		t.Fatalf("expected newest first, got %q", lines[2:])
	}
}

func TestRenderDailyChart(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDailyChart(&buf, []float64{0, 1, 2}, testNow(), 40, false); err != nil {
		t.Fatalf("render chart: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for a buffer")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, 3 bars and trend, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[3], "Fri") {
		t.Fatalf("expected last bar labeled with today, got %q", lines[3])
	}
	if got := BarWidthFor(0, 5); got != minBarWidth {
		t.Fatalf("expected min bar width, got %d", got)
	}
}
