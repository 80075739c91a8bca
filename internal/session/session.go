// Package session implements the progression through one lesson's quiz.
package session

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/quiz"
)

// AnswerMultipleChoice answers the current item with option idx.
// Returns false (and changes nothing) when there is no current item, it is
// already answered, or it is not a multiple-choice item.
func (s *State) AnswerMultipleChoice(idx int) bool {
	it, ok := s.openItem()
	if !ok || !it.IsMultipleChoice() {
		return false
	}
	correct := it.IsCorrectChoice(idx)
	msg := MsgWrongChoice
	if correct {
		msg = MsgCorrect
	}
	s.record(it, correct, msg)
	return true
}

// AnswerFreeText answers the current free-text item with raw. Both raw and
// the expected answer are normalized with the item's own rules.
func (s *State) AnswerFreeText(raw string) bool {
	it, ok := s.openItem()
	if !ok || !it.IsFreeText() {
		return false
	}
	correct := it.IsCorrectText(raw)
	msg := MsgWrongFreeTxt
	if correct {
		msg = MsgCorrect
	}
	s.record(it, correct, msg)
	return true
}

// SetDraft replaces the pending free-text input of an unanswered item.
func (s *State) SetDraft(text string) {
	if _, ok := s.openItem(); !ok {
		return
	}
	s.draft = text
}

// SubmitDraft answers the current free-text item with the draft.
// A blank draft is ignored.
func (s *State) SubmitDraft() bool {
	if strings.TrimSpace(s.draft) == "" {
		return false
	}
	return s.AnswerFreeText(s.draft)
}

// ShowExample fills the draft with the expected answer of the current
// unanswered free-text item.
func (s *State) ShowExample() bool {
	it, ok := s.openItem()
	if !ok || !it.IsFreeText() {
		return false
	}
	s.draft = it.AnswerText
	return true
}

// Advance moves past the current answered item. On the last item the
// pointer stays put; a fully correct run marks the lesson completed.
// A run with mistakes never clears an earlier completion.
func (s *State) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.feedback = nil
	s.draft = ""

	if !s.IsLast() {
		s.index++
		return true
	}

	s.log.Info("quiz finished",
		zap.String("lesson", s.lessonID),
		zap.String("attempt", s.attemptID),
		zap.Int("score", s.score),
		zap.Int("total", len(s.items)),
	)
	if s.Passed() && s.completion != nil && s.lessonID != "" {
		s.completion.MarkDone(s.lessonID)
	}
	return true
}

// Reset clears the lesson's completion record and starts the quiz over
// with the same items.
func (s *State) Reset() {
	if s.completion != nil && s.lessonID != "" {
		s.completion.ClearDone(s.lessonID)
	}
	s.index = 0
	s.score = 0
	s.answered = make(map[string]bool)
	s.feedback = nil
	s.draft = ""
	s.attemptID = uuid.NewString()
}

// openItem returns the current item if it exists and is unanswered.
func (s *State) openItem() (quiz.Item, bool) {
	it, ok := s.CurrentItem()
	if !ok || s.answered[it.ID] {
		return quiz.Item{}, false
	}
	return it, true
}

func (s *State) record(it quiz.Item, correct bool, msg string) {
	s.answered[it.ID] = true
	if correct {
		s.score++
	}
	s.feedback = &Feedback{Correct: correct, Message: msg}
	s.log.Debug("answer recorded",
		zap.String("attempt", s.attemptID),
		zap.String("item", it.ID),
		zap.Bool("correct", correct),
	)
}
