package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/quiz"
)

// Feedback messages shown after an answer.
const (
	MsgCorrect      = "Correct."
	MsgWrongChoice  = "Wrong."
	MsgWrongFreeTxt = "Not quite."
)

// Completion persists whether a lesson has been passed.
// progress.Tracker satisfies it.
type Completion interface {
	IsDone(lessonID string) bool
	MarkDone(lessonID string)
	ClearDone(lessonID string)
}

// Feedback is the result of the most recent answer.
type Feedback struct {
	Correct bool
	Message string
}

// State is one lesson's quiz attempt. The item sequence is fixed for the
// lifetime of a State; everything else changes only through its methods.
//
// Derived values (CurrentItem, CanAdvance, IsSummary, Passed) are computed
// on every call and never stored.
type State struct {
	lessonID  string
	attemptID string
	items     []quiz.Item

	index    int
	answered map[string]bool
	score    int
	feedback *Feedback
	draft    string

	completion Completion
	log        *zap.Logger
}

// New creates a session over items for lessonID. completion may be nil,
// in which case nothing is persisted.
func New(lessonID string, items []quiz.Item, completion Completion, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	if items == nil {
		items = []quiz.Item{}
	}
	return &State{
		lessonID:   lessonID,
		attemptID:  uuid.NewString(),
		items:      items,
		answered:   make(map[string]bool),
		completion: completion,
		log:        log,
	}
}

// Empty returns a session with no lesson and no items.
func Empty() *State {
	return New("", nil, nil, nil)
}

// LessonID returns the lesson this session belongs to ("" for none).
func (s *State) LessonID() string { return s.lessonID }

// AttemptID identifies this attempt in logs. Reset starts a new attempt.
func (s *State) AttemptID() string { return s.attemptID }

// Items returns the item sequence. Callers must not modify it.
func (s *State) Items() []quiz.Item { return s.items }

// Index returns the zero-based pointer into the item sequence.
func (s *State) Index() int { return s.index }

// Score returns the number of items answered correctly.
func (s *State) Score() int { return s.score }

// Feedback returns the feedback of the last answer, or nil once advanced.
func (s *State) Feedback() *Feedback { return s.feedback }

// Draft returns the pending free-text input.
func (s *State) Draft() string { return s.draft }

// Answered reports whether the item with id has been answered.
func (s *State) Answered(id string) bool { return s.answered[id] }

// Total returns the number of items.
func (s *State) Total() int { return len(s.items) }

// CurrentItem returns the item at the pointer, or false when there are none.
func (s *State) CurrentItem() (quiz.Item, bool) {
	if s.index < 0 || s.index >= len(s.items) {
		return quiz.Item{}, false
	}
	return s.items[s.index], true
}

// CanAdvance reports whether the current item exists and has been answered.
func (s *State) CanAdvance() bool {
	it, ok := s.CurrentItem()
	return ok && s.answered[it.ID]
}

// IsLast reports whether the pointer is at the last item.
func (s *State) IsLast() bool {
	return len(s.items) > 0 && s.index == len(s.items)-1
}

// IsSummary reports whether every item has been answered.
func (s *State) IsSummary() bool {
	if len(s.items) == 0 {
		return false
	}
	for _, it := range s.items {
		if !s.answered[it.ID] {
			return false
		}
	}
	return true
}

// Finished reports whether the learner has moved past the last answered
// item, i.e. the summary should replace the question view.
func (s *State) Finished() bool {
	return s.IsSummary() && s.feedback == nil
}

// Passed reports whether every item was answered correctly.
func (s *State) Passed() bool {
	return s.IsSummary() && s.score == len(s.items)
}

// Done reports whether the lesson is recorded as completed.
func (s *State) Done() bool {
	if s.completion == nil || s.lessonID == "" {
		return false
	}
	return s.completion.IsDone(s.lessonID)
}
