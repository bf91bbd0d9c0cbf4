package diagnostic

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
)

func newTestFlow(t *testing.T) (*Flow, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "studyflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return NewFlow(st), st
}

// answerCategory fills every question of category idx with a valid answer.
func answerCategory(t *testing.T, f *Flow, idx int) {
	t.Helper()
	ctx := context.Background()
	for _, q := range categories[idx].Questions {
		var v model.AnswerValue
		switch q.Type {
		case Slider:
			v = model.NumberAnswer(float64(q.Min))
		case Radio:
			v = model.TextAnswer(q.Options[0])
		case Checkbox:
			v = model.ListAnswer([]string{q.Options[0]})
		case Text, Email:
			v = model.TextAnswer("x")
		}
		if err := f.RecordAnswer(ctx, q.ID, v); err != nil {
			t.Fatalf("record answer %d: %v", q.ID, err)
		}
	}
}

func TestCatalogShape(t *testing.T) {
	if len(Categories()) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(Categories()))
	}
	if TotalQuestions() != 19 {
		t.Fatalf("expected 19 questions, got %d", TotalQuestions())
	}
	seen := map[int]bool{}
	for _, c := range Categories() {
		for _, q := range c.Questions {
			if seen[q.ID] {
				t.Fatalf("duplicate question id %d", q.ID)
			}
			seen[q.ID] = true
		}
	}
	if q, ok := QuestionByID(QuestionEmail); !ok || q.Type != Email {
		t.Fatalf("expected email question 19, got %+v", q)
	}
}

func TestCategoryCompleteness(t *testing.T) {
	f, _ := newTestFlow(t)
	ctx := context.Background()
	if f.IsCategoryComplete(0) {
		t.Fatalf("expected empty category incomplete")
	}
	answerCategory(t, f, 0)
	if !f.IsCategoryComplete(0) {
		t.Fatalf("expected answered category complete")
	}

	// An empty checkbox selection still counts as answered.
	if err := f.RecordAnswer(ctx, 3, model.ListAnswer(nil)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !f.IsCategoryComplete(0) {
		t.Fatalf("expected empty list to count as answered")
	}

	answerCategory(t, f, 2)
	if err := f.RecordAnswer(ctx, QuestionCareer, model.TextAnswer("")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if f.IsCategoryComplete(2) {
		t.Fatalf("expected empty string to leave category incomplete")
	}
}

func TestAdvanceRejectsIncomplete(t *testing.T) {
	f, _ := newTestFlow(t)
	if _, err := f.Advance(); !errors.Is(err, ErrCategoryIncomplete) {
		t.Fatalf("expected ErrCategoryIncomplete, got %v", err)
	}
	if f.Current() != 0 {
		t.Fatalf("expected position unchanged, got %d", f.Current())
	}
	answerCategory(t, f, 0)
	step, err := f.Advance()
	if err != nil || step != StepNext || f.Current() != 1 {
		t.Fatalf("expected move to category 1: step=%v err=%v current=%d", step, err, f.Current())
	}
}

func TestAdvanceOnLastRequestsFinalize(t *testing.T) {
	f, _ := newTestFlow(t)
	for i := range categories {
		answerCategory(t, f, i)
	}
	for i := 0; i < len(categories)-1; i++ {
		if _, err := f.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	step, err := f.Advance()
	if err != nil || step != StepFinalize {
		t.Fatalf("expected finalize step, got %v %v", step, err)
	}
	if !f.IsLast() {
		t.Fatalf("expected to stay on last category")
	}
}

func TestGoBackFloorsAtZero(t *testing.T) {
	f, _ := newTestFlow(t)
	f.GoBack()
	if f.Current() != 0 {
		t.Fatalf("expected 0, got %d", f.Current())
	}
	answerCategory(t, f, 0)
	if _, err := f.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	f.GoBack()
	if f.Current() != 0 {
		t.Fatalf("expected 0 after going back, got %d", f.Current())
	}
}

func TestJumpGating(t *testing.T) {
	f, _ := newTestFlow(t)
	if !f.CanJumpTo(0) {
		t.Fatalf("expected first category always reachable")
	}
	if f.CanJumpTo(1) {
		t.Fatalf("expected category 1 gated while category 0 is incomplete")
	}
	answerCategory(t, f, 0)
	answerCategory(t, f, 1)
	answerCategory(t, f, 2)
	if !f.CanJumpTo(1) {
		t.Fatalf("expected category 1 reachable")
	}
	// Two ahead stays disabled even with every earlier category complete.
	if f.CanJumpTo(2) {
		t.Fatalf("expected category 2 gated from category 0")
	}
	if err := f.JumpTo(2); !errors.Is(err, ErrJumpNotAllowed) {
		t.Fatalf("expected ErrJumpNotAllowed, got %v", err)
	}
	if err := f.JumpTo(1); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if !f.CanJumpTo(2) || f.CanJumpTo(4) {
		t.Fatalf("unexpected gating from category 1")
	}
	if f.CanJumpTo(-1) || f.CanJumpTo(len(categories)) {
		t.Fatalf("expected out-of-range indexes rejected")
	}
}

func TestToggleOption(t *testing.T) {
	f, st := newTestFlow(t)
	ctx := context.Background()
	for _, opt := range []string{"TikTok", "YouTube", "TikTok"} {
		if err := f.ToggleOption(ctx, 3, opt); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	v, ok := f.Answer(3)
	if !ok || len(v.List) != 1 || v.List[0] != "YouTube" {
		t.Fatalf("expected only YouTube selected, got %+v", v)
	}
	stored, err := st.GetDiagnosticAnswers(ctx)
	if err != nil {
		t.Fatalf("get answers: %v", err)
	}
	if len(stored) != 1 || len(stored[0].Answer.List) != 1 {
		t.Fatalf("expected persisted toggle, got %+v", stored)
	}
}

func TestRecordAnswerRejectsUnknownQuestion(t *testing.T) {
	f, _ := newTestFlow(t)
	if err := f.RecordAnswer(context.Background(), 99, model.NumberAnswer(1)); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
}

func TestRestoreLoadsStoredAnswers(t *testing.T) {
	f, st := newTestFlow(t)
	ctx := context.Background()
	if err := st.SaveDiagnosticAnswer(ctx, 1, model.NumberAnswer(4), time.Now()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := f.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if answered, total := f.Progress(); answered != 1 || total != 19 {
		t.Fatalf("unexpected progress %d/%d", answered, total)
	}
}

func TestFinalizeSavesProfile(t *testing.T) {
	f, st := newTestFlow(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	if err := f.RecordAnswer(ctx, QuestionCareer, model.TextAnswer("Law")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := f.RecordAnswer(ctx, QuestionCurrentAverage, model.NumberAnswer(13)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := f.Finalize(ctx, 0, now); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if f.Loading() {
		t.Fatalf("expected loading cleared")
	}
	profile, ok, err := st.GetProfile(ctx)
	if err != nil || !ok {
		t.Fatalf("get profile: ok=%v err=%v", ok, err)
	}
	if profile.Email != PlaceholderEmail {
		t.Fatalf("expected placeholder email, got %q", profile.Email)
	}
	if profile.Plan != model.PlanBronze || !profile.CreatedAt.Equal(now) {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if profile.Career != "Law" || profile.CurrentAverage != 13 {
		t.Fatalf("expected career and average saved, got %+v", profile)
	}
}

func TestFinalizeKeepsExistingName(t *testing.T) {
	f, st := newTestFlow(t)
	ctx := context.Background()
	name := "Ana"
	if err := st.SaveProfile(ctx, model.ProfilePatch{Name: &name}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := f.RecordAnswer(ctx, QuestionEmail, model.TextAnswer("ana@uni.edu")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := f.Finalize(ctx, 0, time.Now()); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	profile, _, err := st.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Name != "Ana" || profile.Email != "ana@uni.edu" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestFinalizeHonorsCancel(t *testing.T) {
	f, st := newTestFlow(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.Finalize(ctx, time.Hour, time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok, _ := st.GetProfile(context.Background()); ok {
		t.Fatalf("expected no profile after cancel")
	}
}

func TestBeginFinalizeReportsLoading(t *testing.T) {
	f, _ := newTestFlow(t)
	f.BeginFinalize()
	if !f.Loading() {
		t.Fatalf("expected loading after BeginFinalize")
	}
	if err := f.Finalize(context.Background(), 0, time.Now()); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if f.Loading() {
		t.Fatalf("expected loading cleared after Finalize")
	}
}
