// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
)

const (
	sparkChars     = " .:-=+*#%@"
	day            = 24 * time.Hour
	week           = 7 * day
	defaultTopSubj = 5
)

// Compute derives aggregate statistics from the session history as of now.
// Only completed sessions count.
func Compute(sessions []model.StudySession, now time.Time) model.Stats {
	completed := Completed(sessions)

	var seconds float64
	weekAgo := now.Add(-week)
	thisWeek := 0
	for _, s := range completed {
		seconds += float64(s.Duration)
		if s.StartTime.After(weekAgo) {
			thisWeek++
		}
	}

	return model.Stats{
		TotalSessions:    len(completed),
		TotalHours:       fmt.Sprintf("%.1f", seconds/3600),
		SessionsThisWeek: thisWeek,
		Streak:           Streak(completed, now),
	}
}

// Completed filters the sessions marked completed, keeping order.
func Completed(sessions []model.StudySession) []model.StudySession {
	out := make([]model.StudySession, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed {
			out = append(out, s)
		}
	}
	return out
}

// Streak walks the distinct local start dates, newest first, and counts while each
// date sits exactly streak whole days before the previously matched one.
// The first date is measured from now rather than from a midnight.
func Streak(completed []model.StudySession, now time.Time) int {
	if len(completed) == 0 {
		return 0
	}
	seen := make(map[time.Time]struct{}, len(completed))
	dates := make([]time.Time, 0, len(completed))
	for _, s := range completed {
		d := localMidnight(s.StartTime, now.Location())
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	streak := 0
	checkDate := now
	for _, d := range dates {
		diffDays := int(math.Floor(float64(checkDate.Sub(d)) / float64(day)))
		if diffDays != streak {
			break
		}
		streak++
		checkDate = d
	}
	return streak
}

func localMidnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SubjectHours sums study time per subject over all sessions, rounds each total to one
// decimal and returns the top n by hours. n <= 0 uses the default of five.
func SubjectHours(sessions []model.StudySession, n int) []model.SubjectHours {
	if n <= 0 {
		n = defaultTopSubj
	}
	totals := map[string]float64{}
	for _, s := range sessions {
		totals[s.Subject] += float64(s.Duration) / 3600
	}
	out := make([]model.SubjectHours, 0, len(totals))
	for subject, hours := range totals {
		out = append(out, model.SubjectHours{
			Subject: subject,
			Hours:   math.Round(hours*10) / 10,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours == out[j].Hours {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Hours > out[j].Hours
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// DailyHours returns completed study hours for each of the last days local dates,
// oldest first, ending with the date of now.
func DailyHours(sessions []model.StudySession, now time.Time, days int) []float64 {
	if days <= 0 {
		return nil
	}
	loc := now.Location()
	today := localMidnight(now, loc)
	out := make([]float64, days)
	for _, s := range Completed(sessions) {
		d := localMidnight(s.StartTime, loc)
		offset := int(math.Round(float64(today.Sub(d)) / float64(day)))
		if offset < 0 || offset >= days {
			continue
		}
		out[days-1-offset] += float64(s.Duration) / 3600
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline scaled from zero to the maximum value.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return strings.Repeat(string(sparkChars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round(v / maxVal * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline statistics.
func RenderSummary(w io.Writer, st model.Stats) error {
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", st.TotalSessions),
		fmt.Sprintf("Hours: %s", st.TotalHours),
		fmt.Sprintf("This week: %d", st.SessionsThisWeek),
		fmt.Sprintf("Streak: %d %s", st.Streak, plural(st.Streak, "day", "days")),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSubjects prints hours per subject.
func RenderSubjects(w io.Writer, subjects []model.SubjectHours) error {
	if len(subjects) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Hours by subject"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		rows = append(rows, []string{s.Subject, fmt.Sprintf("%.1f h", s.Hours)})
	}
	for _, line := range formatTable([]string{"Subject", "Hours"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints the session history, newest first, limited to last rows when last > 0.
func RenderHistory(w io.Writer, sessions []model.StudySession, last int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}
	rows := HistoryRows(sessions, last)
	for _, line := range formatTable(HistoryHeaders, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// HistoryHeaders are the column titles of the session history table.
var HistoryHeaders = []string{"Date", "Subject", "Minutes", "Pomodoros", "Mood", "Status"}

// HistoryRows formats sessions newest first, at most last rows when last > 0.
func HistoryRows(sessions []model.StudySession, last int) [][]string {
	ordered := make([]model.StudySession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.After(ordered[j].StartTime)
	})
	if last > 0 && len(ordered) > last {
		ordered = ordered[:last]
	}
	rows := make([][]string, 0, len(ordered))
	for _, s := range ordered {
		status := "completed"
		if !s.Completed {
			status = "incomplete"
		}
		mood := s.Mood
		if mood == "" {
			mood = "-"
		}
		rows = append(rows, []string{
			s.StartTime.Local().Format("2006-01-02 15:04"),
			s.Subject,
			fmt.Sprintf("%d", s.Duration/60),
			fmt.Sprintf("%d", s.PomodorosCompleted),
			mood,
			status,
		})
	}
	return rows
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
