package loader

import "fmt"

// Level is a stage of the fetch cascade.
type Level int

const (
	LevelLanguages Level = iota
	LevelLessons
	LevelQuiz

	numLevels
)

func (l Level) String() string {
	switch l {
	case LevelLanguages:
		return "languages"
	case LevelLessons:
		return "lessons"
	case LevelQuiz:
		return "quiz"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Message is the user-facing text shown when a fetch for l fails.
func (l Level) Message() string {
	switch l {
	case LevelLanguages:
		return "Could not fetch languages from the API."
	case LevelLessons:
		return "Could not fetch lessons."
	case LevelQuiz:
		return "Could not fetch the quiz."
	}
	return "Could not fetch data."
}

func (l Level) valid() bool {
	return l >= LevelLanguages && l < numLevels
}

// FetchError records which level a failed fetch belonged to.
type FetchError struct {
	Level Level
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Level, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
