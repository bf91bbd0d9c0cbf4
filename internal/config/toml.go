// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/studyflow/internal/model"
)

// Defaults mirror the classic Pomodoro cadence.
const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultCheckpointMinutes = 15
	DefaultTargetMinutes     = 120
	DefaultLongBreakEvery    = 4

	DefaultAchievementPollSeconds = 30
	DefaultTipIntervalSeconds     = 60
	DefaultAnalysisDelayMs        = 3500
	DefaultPlanDelayMs            = 1500

	DefaultSubject = "Calculus 2 - Integrals"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timer   TimerConfig   `toml:"timer"`
	Coach   CoachConfig   `toml:"coach"`
	Session SessionConfig `toml:"session"`
}

// TimerConfig maps session timer settings, in minutes.
type TimerConfig struct {
	Focus          *int `toml:"focus"`
	ShortBreak     *int `toml:"short-break"`
	LongBreak      *int `toml:"long-break"`
	Checkpoint     *int `toml:"checkpoint"`
	Target         *int `toml:"target"`
	LongBreakEvery *int `toml:"long-break-every"`
}

// CoachConfig maps cadences (seconds) and simulated delays (milliseconds).
type CoachConfig struct {
	AchievementPoll *int `toml:"achievement-poll"`
	TipInterval     *int `toml:"tip-interval"`
	AnalysisDelay   *int `toml:"analysis-delay"`
	PlanDelay       *int `toml:"plan-delay"`
}

// SessionConfig maps session defaults.
type SessionConfig struct {
	Subject *string `toml:"subject"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Resolve applies file values over the defaults.
func (fc FileConfig) Resolve() model.Config {
	minutes := func(v *int, def int) time.Duration {
		if v == nil {
			return time.Duration(def) * time.Minute
		}
		return time.Duration(*v) * time.Minute
	}
	seconds := func(v *int, def int) time.Duration {
		if v == nil {
			return time.Duration(def) * time.Second
		}
		return time.Duration(*v) * time.Second
	}
	millis := func(v *int, def int) time.Duration {
		if v == nil {
			return time.Duration(def) * time.Millisecond
		}
		return time.Duration(*v) * time.Millisecond
	}

	cfg := model.Config{
		Timer: model.TimerConfig{
			Focus:          minutes(fc.Timer.Focus, DefaultFocusMinutes),
			ShortBreak:     minutes(fc.Timer.ShortBreak, DefaultShortBreakMinutes),
			LongBreak:      minutes(fc.Timer.LongBreak, DefaultLongBreakMinutes),
			Checkpoint:     minutes(fc.Timer.Checkpoint, DefaultCheckpointMinutes),
			Target:         minutes(fc.Timer.Target, DefaultTargetMinutes),
			LongBreakEvery: DefaultLongBreakEvery,
		},
		Coach: model.CoachConfig{
			AchievementPoll: seconds(fc.Coach.AchievementPoll, DefaultAchievementPollSeconds),
			TipInterval:     seconds(fc.Coach.TipInterval, DefaultTipIntervalSeconds),
			AnalysisDelay:   millis(fc.Coach.AnalysisDelay, DefaultAnalysisDelayMs),
			PlanDelay:       millis(fc.Coach.PlanDelay, DefaultPlanDelayMs),
		},
		Subject: DefaultSubject,
	}
	if fc.Timer.LongBreakEvery != nil {
		cfg.Timer.LongBreakEvery = *fc.Timer.LongBreakEvery
	}
	if fc.Session.Subject != nil {
		cfg.Subject = *fc.Session.Subject
	}
	return cfg
}

// Validate checks resolved settings.
func Validate(cfg model.Config) error {
	t := cfg.Timer
	if t.Focus <= 0 || t.ShortBreak <= 0 || t.LongBreak <= 0 {
		return fmt.Errorf("timer durations must be > 0")
	}
	if t.Checkpoint <= 0 {
		return fmt.Errorf("checkpoint must be > 0")
	}
	if t.Target <= 0 {
		return fmt.Errorf("target must be > 0")
	}
	if t.LongBreakEvery <= 0 {
		return fmt.Errorf("long-break-every must be > 0")
	}
	if cfg.Coach.AchievementPoll <= 0 || cfg.Coach.TipInterval <= 0 {
		return fmt.Errorf("coach intervals must be > 0")
	}
	if cfg.Coach.AnalysisDelay < 0 || cfg.Coach.PlanDelay < 0 {
		return fmt.Errorf("coach delays must be >= 0")
	}
	return nil
}
