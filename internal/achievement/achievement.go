// Package achievement evaluates and persists unlocked badges.
package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/stats"
	"github.com/verte-zerg/studyflow/internal/store"
)

type rule struct {
	badge  model.Achievement
	earned func(model.Stats) bool
}

var catalog = []rule{
	{
		badge: model.Achievement{
			ID:          model.AchievementFirstSession,
			Name:        "First Session",
			Description: "You completed your first study session",
			Icon:        "🎯",
		},
		earned: func(s model.Stats) bool { return s.TotalSessions >= 1 },
	},
	{
		badge: model.Achievement{
			ID:          model.AchievementTenSessions,
			Name:        "Ten Sessions Strong",
			Description: "You completed 10 study sessions",
			Icon:        "🏆",
		},
		earned: func(s model.Stats) bool { return s.TotalSessions >= 10 },
	},
	{
		badge: model.Achievement{
			ID:          model.AchievementWeekStreak,
			Name:        "7-Day Streak",
			Description: "You studied 7 days in a row",
			Icon:        "🔥",
		},
		earned: func(s model.Stats) bool { return s.Streak >= 7 },
	},
}

// Catalog returns every achievement in display order, without unlock times.
func Catalog() []model.Achievement {
	out := make([]model.Achievement, len(catalog))
	for i, r := range catalog {
		out[i] = r.badge
	}
	return out
}

// Evaluate returns the achievements newly earned by st that are not already unlocked,
// stamped with now.
func Evaluate(st model.Stats, unlocked []model.Achievement, now time.Time) []model.Achievement {
	have := make(map[string]struct{}, len(unlocked))
	for _, a := range unlocked {
		have[a.ID] = struct{}{}
	}
	var fresh []model.Achievement
	for _, r := range catalog {
		if _, ok := have[r.badge.ID]; ok {
			continue
		}
		if !r.earned(st) {
			continue
		}
		badge := r.badge
		badge.UnlockedAt = now
		fresh = append(fresh, badge)
	}
	return fresh
}

// Checker loads the current statistics and persists newly unlocked achievements.
type Checker struct {
	store *store.Store
	now   func() time.Time
}

// NewChecker creates a checker. A nil now uses time.Now.
func NewChecker(st *store.Store, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{store: st, now: now}
}

// Check evaluates the catalog and stores the union of old and new achievements in one write.
// It returns only the newly unlocked ones.
func (c *Checker) Check(ctx context.Context) ([]model.Achievement, error) {
	now := c.now()
	current, err := stats.Load(ctx, c.store, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	unlocked, err := c.store.GetUnlockedAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	fresh := Evaluate(current, unlocked, now)
	if len(fresh) == 0 {
		return nil, nil
	}
	all := make([]model.Achievement, 0, len(unlocked)+len(fresh))
	all = append(all, unlocked...)
	all = append(all, fresh...)
	if err := c.store.SaveUnlockedAchievements(ctx, all); err != nil {
		return nil, fmt.Errorf("failed to save achievements: %w", err)
	}
	return fresh, nil
}
