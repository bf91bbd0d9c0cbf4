// Package timer implements the Pomodoro study session state machine.
package timer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/studyflow/internal/model"
)

// ErrNoPrompt is returned when a prompt answer arrives while that prompt is not open.
var ErrNoPrompt = errors.New("prompt is not open")

// Phase is a stage of the Pomodoro cycle.
type Phase int

// Phases.
const (
	Focus Phase = iota
	ShortBreak
	LongBreak
)

func (p Phase) String() string {
	switch p {
	case ShortBreak:
		return "Short break"
	case LongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}

// Prompt is a modal question that suspends ticking while open.
type Prompt int

// Prompts.
const (
	PromptNone Prompt = iota
	PromptMood
	PromptFinish
	PromptQuit
)

// EventKind distinguishes tick events.
type EventKind int

// Event kinds.
const (
	PhaseCompleted EventKind = iota
	Checkpoint
)

// Event reports a transition produced by Tick.
type Event struct {
	Kind EventKind
	From Phase
	To   Phase
	// Index counts checkpoints from 1.
	Index int
}

// Message returns the notification title and body for the event.
func (e Event) Message() (title, body string) {
	switch e.Kind {
	case Checkpoint:
		return "Emotional checkpoint", "How are you feeling right now?"
	default:
		if e.From == Focus {
			return "🎉 Pomodoro complete!", "Time for a break"
		}
		return "✓ Break over", "Let's get back to focus"
	}
}

// Mood is a checkpoint answer.
type Mood struct {
	Emoji string
	Label string
}

// Moods lists the checkpoint answers in display order.
var Moods = []Mood{
	{Emoji: "😫", Label: "Very bad"},
	{Emoji: "😐", Label: "Normal"},
	{Emoji: "🙂", Label: "Good"},
	{Emoji: "😊", Label: "Very good"},
	{Emoji: "🔥", Label: "Great!"},
}

// Rating is the self-reported goal achievement at the end of a session.
type Rating string

// Ratings.
const (
	RatingYes     Rating = "yes"
	RatingPartial Rating = "partial"
	RatingNo      Rating = "no"
)

// ChecklistItem is a session task the user can tick off.
type ChecklistItem struct {
	Text string
	Done bool
}

func defaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Text: "Review theory"},
		{Text: "Solve exercises"},
		{Text: "Write summary"},
	}
}

const bannerMinute = 10

// Session is one running study session. It is not safe for concurrent use.
type Session struct {
	cfg       model.TimerConfig
	id        string
	subject   string
	startTime time.Time

	phase          Phase
	remaining      int
	running        bool
	pomodoros      int
	elapsed        int
	lastCheckpoint int

	prompt        Prompt
	resumeOnClose bool

	mood      string
	notes     string
	checklist []ChecklistItem
}

// New creates a paused session in the focus phase.
func New(cfg model.TimerConfig, subject string, start time.Time) *Session {
	id := start.Format("20060102150405")
	if u, err := uuid.NewV7(); err == nil {
		id = u.String()
	}
	return &Session{
		cfg:       cfg,
		id:        id,
		subject:   subject,
		startTime: start,
		phase:     Focus,
		remaining: seconds(cfg.Focus),
		checklist: defaultChecklist(),
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Subject returns the studied subject.
func (s *Session) Subject() string { return s.subject }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Remaining returns the time left in the current phase.
func (s *Session) Remaining() time.Duration { return time.Duration(s.remaining) * time.Second }

// Elapsed returns the total time ticked while running.
func (s *Session) Elapsed() time.Duration { return time.Duration(s.elapsed) * time.Second }

// Running reports whether ticks advance the clock.
func (s *Session) Running() bool { return s.running }

// Pomodoros returns the number of completed focus phases.
func (s *Session) Pomodoros() int { return s.pomodoros }

// Prompt returns the open prompt.
func (s *Session) Prompt() Prompt { return s.prompt }

// Mood returns the latest checkpoint mood.
func (s *Session) Mood() string { return s.mood }

// PhaseLength returns the full length of the current phase.
func (s *Session) PhaseLength() time.Duration {
	return s.phaseDuration(s.phase)
}

func (s *Session) phaseDuration(p Phase) time.Duration {
	switch p {
	case ShortBreak:
		return s.cfg.ShortBreak
	case LongBreak:
		return s.cfg.LongBreak
	default:
		return s.cfg.Focus
	}
}

// Tick advances the clock by one second while running with no prompt open.
func (s *Session) Tick() []Event {
	if !s.running || s.prompt != PromptNone {
		return nil
	}
	var events []Event
	if s.remaining <= 1 {
		from := s.phase
		s.advancePhase()
		events = append(events, Event{Kind: PhaseCompleted, From: from, To: s.phase})
	} else {
		s.remaining--
	}
	s.elapsed++

	if every := seconds(s.cfg.Checkpoint); every > 0 {
		if idx := s.elapsed / every; idx > s.lastCheckpoint {
			s.lastCheckpoint = idx
			s.running = false
			s.prompt = PromptMood
			s.resumeOnClose = true
			events = append(events, Event{Kind: Checkpoint, From: s.phase, To: s.phase, Index: idx})
		}
	}
	return events
}

func (s *Session) advancePhase() {
	if s.phase != Focus {
		s.phase = Focus
		s.remaining = seconds(s.cfg.Focus)
		return
	}
	s.pomodoros++
	every := s.cfg.LongBreakEvery
	if every > 0 && s.pomodoros%every == 0 {
		s.phase = LongBreak
	} else {
		s.phase = ShortBreak
	}
	s.remaining = seconds(s.phaseDuration(s.phase))
}

// Toggle flips between running and paused. It does nothing while a prompt is open.
func (s *Session) Toggle() {
	if s.prompt != PromptNone {
		return
	}
	s.running = !s.running
}

// Pause stops the clock.
func (s *Session) Pause() {
	s.running = false
}

// Resume starts the clock unless a prompt is open.
func (s *Session) Resume() {
	if s.prompt == PromptNone {
		s.running = true
	}
}

// Skip ends the current phase on the next tick.
func (s *Session) Skip() {
	s.remaining = 1
}

// SelectMood answers the checkpoint prompt and resumes the clock.
func (s *Session) SelectMood(mood string) error {
	if s.prompt != PromptMood {
		return ErrNoPrompt
	}
	s.mood = mood
	s.closePrompt()
	s.running = true
	return nil
}

// DismissMood closes the checkpoint prompt without recording a mood. The clock stays paused.
func (s *Session) DismissMood() error {
	if s.prompt != PromptMood {
		return ErrNoPrompt
	}
	s.closePrompt()
	return nil
}

func (s *Session) openPrompt(p Prompt) {
	if s.prompt == PromptNone {
		s.resumeOnClose = s.running
	}
	s.prompt = p
	s.running = false
}

func (s *Session) closePrompt() {
	s.prompt = PromptNone
	s.resumeOnClose = false
}

func (s *Session) cancelPrompt(p Prompt) error {
	if s.prompt != p {
		return ErrNoPrompt
	}
	resume := s.resumeOnClose
	s.closePrompt()
	s.running = resume
	return nil
}

// RequestFinish opens the completion prompt and pauses the clock.
func (s *Session) RequestFinish() {
	s.openPrompt(PromptFinish)
}

// CancelFinish closes the completion prompt and restores the previous run state.
func (s *Session) CancelFinish() error {
	return s.cancelPrompt(PromptFinish)
}

// Finish closes the completion prompt and builds the session record. Rating no marks the
// session incomplete; a non-empty reflection is appended to the notes.
func (s *Session) Finish(rating Rating, reflection string, now time.Time) (model.StudySession, error) {
	if s.prompt != PromptFinish {
		return model.StudySession{}, ErrNoPrompt
	}
	s.closePrompt()
	s.running = false

	notes := strings.TrimSpace(s.notes)
	if r := strings.TrimSpace(reflection); r != "" {
		if notes != "" {
			notes += "\n\n"
		}
		notes += "Learned: " + r
	}
	return model.StudySession{
		ID:                 s.id,
		Subject:            s.subject,
		Duration:           s.elapsed,
		StartTime:          s.startTime,
		EndTime:            now,
		PomodorosCompleted: s.pomodoros,
		Mood:               s.mood,
		Notes:              notes,
		Completed:          rating != RatingNo,
	}, nil
}

// RequestQuit opens the quit confirmation and pauses the clock.
func (s *Session) RequestQuit() {
	s.openPrompt(PromptQuit)
}

// ConfirmQuit abandons the session. Nothing is recorded.
func (s *Session) ConfirmQuit() error {
	if s.prompt != PromptQuit {
		return ErrNoPrompt
	}
	s.closePrompt()
	s.running = false
	return nil
}

// CancelQuit closes the quit confirmation and restores the previous run state.
func (s *Session) CancelQuit() error {
	return s.cancelPrompt(PromptQuit)
}

// ProgressPercent returns elapsed time against the session target, capped at 100.
func (s *Session) ProgressPercent() float64 {
	target := seconds(s.cfg.Target)
	if target <= 0 {
		return 0
	}
	return min(100, float64(s.elapsed)*100/float64(target))
}

// ShowBanner reports whether the mid-focus encouragement should be visible.
func (s *Session) ShowBanner() bool {
	return s.running && s.phase == Focus && s.remaining/60 == bannerMinute
}

// Notes returns the scratchpad text.
func (s *Session) Notes() string { return s.notes }

// SetNotes replaces the scratchpad text.
func (s *Session) SetNotes(notes string) { s.notes = notes }

// Checklist returns a copy of the session tasks.
func (s *Session) Checklist() []ChecklistItem {
	out := make([]ChecklistItem, len(s.checklist))
	copy(out, s.checklist)
	return out
}

// ToggleTask flips the done flag of task i.
func (s *Session) ToggleTask(i int) {
	if i >= 0 && i < len(s.checklist) {
		s.checklist[i].Done = !s.checklist[i].Done
	}
}
