// Package model defines shared data structures.
package model

import "time"

// Plan is the subscription tier shown on the profile.
type Plan string

// Plan tiers.
const (
	PlanBronze Plan = "Bronze"
	PlanSilver Plan = "Silver"
	PlanGold   Plan = "Gold"
)

// UserProfile is the single stored profile of the local user.
type UserProfile struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	University     string    `json:"university"`
	Career         string    `json:"career"`
	CurrentAverage float64   `json:"currentAverage"`
	TargetAverage  float64   `json:"targetAverage"`
	Plan           Plan      `json:"plan"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProfilePatch carries the fields to merge into the stored profile. Nil fields are preserved.
type ProfilePatch struct {
	Name           *string
	Email          *string
	University     *string
	Career         *string
	CurrentAverage *float64
	TargetAverage  *float64
	Plan           *Plan
	CreatedAt      *time.Time
}

// Apply merges the non-nil patch fields over p.
func (patch ProfilePatch) Apply(p UserProfile) UserProfile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.University != nil {
		p.University = *patch.University
	}
	if patch.Career != nil {
		p.Career = *patch.Career
	}
	if patch.CurrentAverage != nil {
		p.CurrentAverage = *patch.CurrentAverage
	}
	if patch.TargetAverage != nil {
		p.TargetAverage = *patch.TargetAverage
	}
	if patch.Plan != nil {
		p.Plan = *patch.Plan
	}
	if patch.CreatedAt != nil {
		p.CreatedAt = *patch.CreatedAt
	}
	return p
}

// DiagnosticAnswer stores the latest answer to one questionnaire question.
type DiagnosticAnswer struct {
	QuestionID int         `json:"questionId"`
	Answer     AnswerValue `json:"answer"`
	Timestamp  time.Time   `json:"timestamp"`
}

// StudySession is an immutable record of a finished timer session.
type StudySession struct {
	ID                 string    `json:"id"`
	Subject            string    `json:"subject"`
	Duration           int       `json:"duration"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	PomodorosCompleted int       `json:"pomodorosCompleted"`
	Mood               string    `json:"mood"`
	Notes              string    `json:"notes"`
	Completed          bool      `json:"completed"`
}

// Achievement ids.
const (
	AchievementFirstSession = "first_session"
	AchievementTenSessions  = "ten_sessions"
	AchievementWeekStreak   = "week_streak"
)

// Achievement is an unlocked (or unlockable) badge.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// Stats are derived from the session history and never stored.
type Stats struct {
	TotalSessions    int
	TotalHours       string
	SessionsThisWeek int
	Streak           int
}

// SubjectHours aggregates study time per subject.
type SubjectHours struct {
	Subject string
	Hours   float64
}

// Link is a titled URL.
type Link struct {
	Title string
	URL   string
}

// ScheduleItem is one day of a study plan.
type ScheduleItem struct {
	Day  string
	Task string
}

// Exercise is a practice question with its reference answer.
type Exercise struct {
	Question string
	Answer   string
}

// StudyPlan is a canned study plan for a topic.
type StudyPlan struct {
	Topic            string
	Summary          string
	KeyConcepts      []string
	Schedule         []ScheduleItem
	Videos           []Link
	ReadingMaterials []Link
	Exercises        []Exercise
	Tips             []string
	FunFacts         []string
}

// TimerConfig defines session timer durations.
type TimerConfig struct {
	Focus          time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	Checkpoint     time.Duration
	Target         time.Duration
	LongBreakEvery int
}

// CoachConfig defines app-level cadences and simulated delays.
type CoachConfig struct {
	AchievementPoll time.Duration
	TipInterval     time.Duration
	AnalysisDelay   time.Duration
	PlanDelay       time.Duration
}

// Config bundles runtime settings.
type Config struct {
	Timer   TimerConfig
	Coach   CoachConfig
	Subject string
}
