package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
)

// PlaceholderEmail is saved when the email question holds no text answer.
const PlaceholderEmail = "user@email.com"

var (
	// ErrCategoryIncomplete is returned by Advance while the current category has unanswered questions.
	ErrCategoryIncomplete = errors.New("complete all questions: answer every question in this section before continuing")
	// ErrJumpNotAllowed is returned by JumpTo for a gated category.
	ErrJumpNotAllowed = errors.New("category is not reachable yet")
	// ErrUnknownQuestion is returned for ids outside the catalog.
	ErrUnknownQuestion = errors.New("unknown question")
)

// Step tells the caller what follows a successful Advance.
type Step int

// Steps.
const (
	StepNext Step = iota
	StepFinalize
)

// Flow holds the questionnaire state of one run.
type Flow struct {
	store   *store.Store
	now     func() time.Time
	current int
	answers map[int]model.AnswerValue
	loading atomic.Bool
}

// NewFlow creates a flow positioned at the first category with no answers.
func NewFlow(st *store.Store) *Flow {
	return &Flow{store: st, now: time.Now, answers: map[int]model.AnswerValue{}}
}

// Restore loads previously stored answers into memory.
func (f *Flow) Restore(ctx context.Context) error {
	stored, err := f.store.GetDiagnosticAnswers(ctx)
	if err != nil {
		return err
	}
	for id, v := range AnswerMap(stored) {
		f.answers[id] = v
	}
	return nil
}

// Current returns the index of the visible category.
func (f *Flow) Current() int {
	return f.current
}

// Category returns the visible category.
func (f *Flow) Category() Category {
	return categories[f.current]
}

// IsLast reports whether the visible category is the final one.
func (f *Flow) IsLast() bool {
	return f.current == len(categories)-1
}

// Answer returns the in-memory answer to id.
func (f *Flow) Answer(id int) (model.AnswerValue, bool) {
	v, ok := f.answers[id]
	return v, ok
}

// Answers returns a copy of the in-memory answers.
func (f *Flow) Answers() map[int]model.AnswerValue {
	out := make(map[int]model.AnswerValue, len(f.answers))
	for id, v := range f.answers {
		out[id] = v
	}
	return out
}

// Loading reports whether finalization is in progress.
func (f *Flow) Loading() bool {
	return f.loading.Load()
}

// Progress returns the number of answered questions and the catalog size.
func (f *Flow) Progress() (answered, total int) {
	return len(f.answers), TotalQuestions()
}

// RecordAnswer stores value in memory and then persists it. The in-memory answer stays even
// when persistence fails.
func (f *Flow) RecordAnswer(ctx context.Context, id int, value model.AnswerValue) error {
	if _, ok := QuestionByID(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
	}
	f.answers[id] = value
	if err := f.store.SaveDiagnosticAnswer(ctx, id, value, f.now()); err != nil {
		return fmt.Errorf("failed to save answer %d: %w", id, err)
	}
	return nil
}

// ToggleOption adds option to a checkbox answer, or removes it when already selected.
func (f *Flow) ToggleOption(ctx context.Context, id int, option string) error {
	var current []string
	if v, ok := f.answers[id]; ok && v.Kind == model.AnswerList {
		current = v.List
	}
	var next []string
	if slices.Contains(current, option) {
		next = make([]string, 0, len(current))
		for _, o := range current {
			if o != option {
				next = append(next, o)
			}
		}
	} else {
		next = append(slices.Clone(current), option)
	}
	return f.RecordAnswer(ctx, id, model.ListAnswer(next))
}

// IsCategoryComplete reports whether every question of category idx has an answer that is
// not the empty string. An empty checkbox list counts as answered.
func (f *Flow) IsCategoryComplete(idx int) bool {
	if idx < 0 || idx >= len(categories) {
		return false
	}
	for _, q := range categories[idx].Questions {
		v, ok := f.answers[q.ID]
		if !ok || !v.Defined() {
			return false
		}
		if v.Kind == model.AnswerText && v.Text == "" {
			return false
		}
	}
	return true
}

// Advance moves to the next category, or reports StepFinalize on the last one.
// The position does not change when the current category is incomplete.
func (f *Flow) Advance() (Step, error) {
	if !f.IsCategoryComplete(f.current) {
		return StepNext, ErrCategoryIncomplete
	}
	if f.IsLast() {
		return StepFinalize, nil
	}
	f.current++
	return StepNext, nil
}

// GoBack moves to the previous category without validation.
func (f *Flow) GoBack() {
	if f.current > 0 {
		f.current--
	}
}

// CanJumpTo reports whether the stepper allows selecting category idx: at most one past the
// current category, and only after the preceding category is complete.
func (f *Flow) CanJumpTo(idx int) bool {
	if idx < 0 || idx >= len(categories) {
		return false
	}
	if idx > f.current+1 {
		return false
	}
	return idx == 0 || f.IsCategoryComplete(idx-1)
}

// JumpTo selects category idx when allowed.
func (f *Flow) JumpTo(idx int) error {
	if !f.CanJumpTo(idx) {
		return fmt.Errorf("%w: %d", ErrJumpNotAllowed, idx)
	}
	f.current = idx
	return nil
}

// BeginFinalize reports loading until the next Finalize returns. Callers that run Finalize in
// another goroutine call it first so the flag is set before the work is scheduled.
func (f *Flow) BeginFinalize() {
	f.loading.Store(true)
}

// Finalize waits the analysis delay and saves the profile built from the answers.
// Loading is reported for the duration of the call.
func (f *Flow) Finalize(ctx context.Context, delay time.Duration, now time.Time) error {
	f.loading.Store(true)
	defer f.loading.Store(false)

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := f.store.SaveProfile(ctx, ProfilePatch(f.answers, now)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ProfilePatch builds the profile fields derived from the answers.
func ProfilePatch(answers map[int]model.AnswerValue, now time.Time) model.ProfilePatch {
	email := PlaceholderEmail
	if v, ok := answers[QuestionEmail]; ok && v.Kind == model.AnswerText {
		email = v.Text
	}
	plan := model.PlanBronze
	createdAt := now
	patch := model.ProfilePatch{
		Email:     &email,
		Plan:      &plan,
		CreatedAt: &createdAt,
	}
	if v, ok := answers[QuestionCareer]; ok && v.Kind == model.AnswerText && v.Text != "" {
		career := v.Text
		patch.Career = &career
	}
	if v, ok := answers[QuestionCurrentAverage]; ok && v.Kind == model.AnswerNumber {
		avg := v.Number
		patch.CurrentAverage = &avg
	}
	if v, ok := answers[QuestionTargetAverage]; ok && v.Kind == model.AnswerNumber {
		avg := v.Number
		patch.TargetAverage = &avg
	}
	return patch
}

// AnswerMap indexes stored answers by question id. Later entries win.
func AnswerMap(stored []model.DiagnosticAnswer) map[int]model.AnswerValue {
	out := make(map[int]model.AnswerValue, len(stored))
	for _, a := range stored {
		out[a.QuestionID] = a.Answer
	}
	return out
}
