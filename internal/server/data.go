package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Data file names inside the data directory.
const (
	LanguagesFile = "languages.json"
	LessonsFile   = "lessons.json"
	QuizzesFile   = "quizzes.json"
)

// DataDir reads content from JSON files. Files are re-read on every call,
// so edits show up without a restart.
type DataDir struct {
	root string
}

// NewDataDir returns a DataDir rooted at root.
func NewDataDir(root string) *DataDir {
	return &DataDir{root: root}
}

// Languages returns the language list as stored.
func (d *DataDir) Languages() (json.RawMessage, error) {
	var list []json.RawMessage
	if err := d.load(LanguagesFile, &list); err != nil {
		return nil, err
	}
	return marshalList(list)
}

// Lessons returns the lessons of languageID, or an empty list when the
// language is unknown.
func (d *DataDir) Lessons(languageID string) (json.RawMessage, error) {
	var byLang map[string][]json.RawMessage
	if err := d.load(LessonsFile, &byLang); err != nil {
		return nil, err
	}
	return marshalList(byLang[languageID])
}

// Quiz returns the quiz payload of lessonID (an object or a list), or JSON
// null when the lesson has none.
func (d *DataDir) Quiz(lessonID string) (json.RawMessage, error) {
	var byLesson map[string]json.RawMessage
	if err := d.load(QuizzesFile, &byLesson); err != nil {
		return nil, err
	}
	q, ok := byLesson[lessonID]
	if !ok {
		return json.RawMessage("null"), nil
	}
	return q, nil
}

func (d *DataDir) load(name string, out any) error {
	b, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func marshalList(list []json.RawMessage) (json.RawMessage, error) {
	if list == nil {
		list = []json.RawMessage{}
	}
	return json.Marshal(list)
}
