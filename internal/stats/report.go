package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
)

// ChartDays is the number of days shown in the daily hours chart.
const ChartDays = 7

// Report contains precomputed data for progress rendering.
type Report struct {
	Stats    model.Stats
	Sessions []model.StudySession
	Subjects []model.SubjectHours
	Daily    []float64
}

// Load reads the session history and derives the headline statistics.
func Load(ctx context.Context, st *store.Store, now time.Time) (model.Stats, error) {
	sessions, err := st.GetSessions(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return Compute(sessions, now), nil
}

// BuildReport loads and prepares data for progress rendering.
func BuildReport(ctx context.Context, st *store.Store, now time.Time) (Report, error) {
	sessions, err := st.GetSessions(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Stats:    Compute(sessions, now),
		Sessions: sessions,
		Subjects: SubjectHours(sessions, defaultTopSubj),
		Daily:    DailyHours(sessions, now, ChartDays),
	}, nil
}
