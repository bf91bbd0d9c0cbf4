package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
)

// ErrMalformed marks a stored value that could not be decoded. Readers treat it as absent.
var ErrMalformed = errors.New("malformed stored value")

// decode unmarshals raw into dest. Malformed values are logged and reported as absent.
func decode(key, raw string, dest any) bool {
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("ignoring %s: %v: %v", key, ErrMalformed, err)
		return false
	}
	return true
}

func encode(key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return string(data), nil
}

func (s *Store) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return decode(key, raw, dest), nil
}

// GetProfile returns the stored profile. ok is false for a new user.
func (s *Store) GetProfile(ctx context.Context) (model.UserProfile, bool, error) {
	var profile model.UserProfile
	ok, err := s.load(ctx, KeyProfile, &profile)
	if err != nil || !ok {
		return model.UserProfile{}, false, err
	}
	return profile, true, nil
}

// SaveProfile merges patch over the stored profile. Fields the patch leaves nil are preserved.
func (s *Store) SaveProfile(ctx context.Context, patch model.ProfilePatch) error {
	return s.update(ctx, KeyProfile, func(raw string, ok bool) (string, error) {
		var existing model.UserProfile
		if ok && !decode(KeyProfile, raw, &existing) {
			existing = model.UserProfile{}
		}
		return encode(KeyProfile, patch.Apply(existing))
	})
}

// GetDiagnosticAnswers returns the stored answers in save order.
func (s *Store) GetDiagnosticAnswers(ctx context.Context) ([]model.DiagnosticAnswer, error) {
	var answers []model.DiagnosticAnswer
	if _, err := s.load(ctx, KeyDiagnostic, &answers); err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []model.DiagnosticAnswer{}
	}
	return answers, nil
}

// SaveDiagnosticAnswer replaces any previous answer to questionID and appends the new one.
func (s *Store) SaveDiagnosticAnswer(ctx context.Context, questionID int, value model.AnswerValue, now time.Time) error {
	return s.update(ctx, KeyDiagnostic, func(raw string, ok bool) (string, error) {
		var answers []model.DiagnosticAnswer
		if ok && !decode(KeyDiagnostic, raw, &answers) {
			answers = nil
		}
		filtered := make([]model.DiagnosticAnswer, 0, len(answers)+1)
		for _, a := range answers {
			if a.QuestionID != questionID {
				filtered = append(filtered, a)
			}
		}
		filtered = append(filtered, model.DiagnosticAnswer{
			QuestionID: questionID,
			Answer:     value,
			Timestamp:  now,
		})
		return encode(KeyDiagnostic, filtered)
	})
}

// ClearDiagnostic removes every stored answer.
func (s *Store) ClearDiagnostic(ctx context.Context) error {
	return s.Remove(ctx, KeyDiagnostic)
}

// GetSessions returns the session history in save order.
func (s *Store) GetSessions(ctx context.Context) ([]model.StudySession, error) {
	var sessions []model.StudySession
	if _, err := s.load(ctx, KeySessions, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []model.StudySession{}
	}
	return sessions, nil
}

// SaveSession appends session to the history.
func (s *Store) SaveSession(ctx context.Context, session model.StudySession) error {
	return s.update(ctx, KeySessions, func(raw string, ok bool) (string, error) {
		var sessions []model.StudySession
		if ok && !decode(KeySessions, raw, &sessions) {
			sessions = nil
		}
		sessions = append(sessions, session)
		return encode(KeySessions, sessions)
	})
}

// GetUnlockedAchievements returns the unlocked achievement set.
func (s *Store) GetUnlockedAchievements(ctx context.Context) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if _, err := s.load(ctx, KeyAchievements, &achievements); err != nil {
		return nil, err
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	return achievements, nil
}

// SaveUnlockedAchievements replaces the unlocked achievement set in one write.
func (s *Store) SaveUnlockedAchievements(ctx context.Context, achievements []model.Achievement) error {
	value, err := encode(KeyAchievements, achievements)
	if err != nil {
		return err
	}
	return s.Set(ctx, KeyAchievements, value)
}
