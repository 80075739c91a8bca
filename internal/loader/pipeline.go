// Package loader drives the languages → lessons → quiz fetch cascade.
//
// Every selection synchronously clears the state downstream of it and bumps
// a per-level generation. Fetches are described by a Request carrying that
// generation; a Result whose generation is no longer current is dropped, so
// a slow response for an old selection can never overwrite a newer one.
package loader

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/quiz"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/session"
)

// Fetcher reads content from the service. content.Client satisfies it.
type Fetcher interface {
	Languages(ctx context.Context) ([]content.Language, error)
	Lessons(ctx context.Context, languageID content.ID) ([]content.Lesson, error)
	Quiz(ctx context.Context, lessonID content.ID) (json.RawMessage, error)
}

// Request is a fetch the caller must perform. ID is the language id for
// lesson requests and the lesson id for quiz requests.
type Request struct {
	Level Level
	Gen   uint64
	ID    content.ID
}

// Result is the outcome of performing a Request.
type Result struct {
	Request

	Languages []content.Language
	Lessons   []content.Lesson
	Quiz      json.RawMessage
	Err       error
}

// LevelState is the visible status of one level.
type LevelState struct {
	Loading bool
	Err     string

	gen uint64
}

// Pipeline holds the selection cascade and the current quiz session.
// It is not safe for concurrent use; all calls belong on one goroutine.
type Pipeline struct {
	levels [numLevels]LevelState

	languages []content.Language
	lessons   []content.Lesson
	language  *content.Language
	lesson    *content.Lesson
	session   *session.State

	completion session.Completion
	log        *zap.Logger
}

// New creates an empty pipeline. completion is handed to every quiz
// session it creates.
func New(completion session.Completion, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		languages:  []content.Language{},
		lessons:    []content.Lesson{},
		session:    session.Empty(),
		completion: completion,
		log:        log,
	}
}

// Languages returns the fetched languages.
func (p *Pipeline) Languages() []content.Language { return p.languages }

// Lessons returns the lessons of the selected language.
func (p *Pipeline) Lessons() []content.Lesson { return p.lessons }

// Session returns the quiz session of the selected lesson. Never nil.
func (p *Pipeline) Session() *session.State { return p.session }

// Level returns the status of l.
func (p *Pipeline) Level(l Level) LevelState { return p.levels[l] }

// SelectedLanguage returns the selected language, if any.
func (p *Pipeline) SelectedLanguage() (content.Language, bool) {
	if p.language == nil {
		return content.Language{}, false
	}
	return *p.language, true
}

// SelectedLesson returns the selected lesson, if any.
func (p *Pipeline) SelectedLesson() (content.Lesson, bool) {
	if p.lesson == nil {
		return content.Lesson{}, false
	}
	return *p.lesson, true
}

// LoadLanguages clears everything and requests the language list.
func (p *Pipeline) LoadLanguages() Request {
	p.language = nil
	p.languages = []content.Language{}
	p.clearFrom(LevelLessons)
	return p.begin(LevelLanguages, "")
}

// SelectLanguage selects lang, clears its lessons and the quiz session, and
// requests the lessons of lang.
func (p *Pipeline) SelectLanguage(lang content.Language) Request {
	p.language = &lang
	p.clearFrom(LevelLessons)
	return p.begin(LevelLessons, lang.ID)
}

// SelectLesson selects lesson, clears the quiz session, and requests the
// quiz of lesson. The selected language is kept.
func (p *Pipeline) SelectLesson(lesson content.Lesson) Request {
	p.lesson = &lesson
	p.clearFrom(LevelQuiz)
	return p.begin(LevelQuiz, lesson.ID)
}

// Retry re-requests the current fetch of l. It reports false when l has
// nothing selected to fetch for.
func (p *Pipeline) Retry(l Level) (Request, bool) {
	switch l {
	case LevelLanguages:
		return p.LoadLanguages(), true
	case LevelLessons:
		if p.language == nil {
			return Request{}, false
		}
		return p.SelectLanguage(*p.language), true
	case LevelQuiz:
		if p.lesson == nil {
			return Request{}, false
		}
		return p.SelectLesson(*p.lesson), true
	}
	return Request{}, false
}

// Current reports whether req still belongs to the current selection.
func (p *Pipeline) Current(req Request) bool {
	return req.Level.valid() && p.levels[req.Level].gen == req.Gen
}

// Apply folds res into the pipeline and returns the follow-up requests
// caused by auto-selection. Stale results change nothing.
func (p *Pipeline) Apply(res Result) []Request {
	if !p.Current(res.Request) {
		p.log.Debug("stale result dropped",
			zap.Stringer("level", res.Level),
			zap.Uint64("gen", res.Gen),
			zap.String("id", res.ID.String()),
		)
		return nil
	}

	ls := &p.levels[res.Level]
	ls.Loading = false

	if res.Err != nil {
		ls.Err = res.Level.Message()
		p.log.Warn("fetch failed",
			zap.Stringer("level", res.Level),
			zap.String("id", res.ID.String()),
			zap.Error(res.Err),
		)
		return nil
	}
	ls.Err = ""

	switch res.Level {
	case LevelLanguages:
		p.languages = nonNil(res.Languages)
		if len(p.languages) > 0 {
			return []Request{p.SelectLanguage(p.languages[0])}
		}
	case LevelLessons:
		p.lessons = nonNil(res.Lessons)
		if len(p.lessons) > 0 {
			return []Request{p.SelectLesson(p.lessons[0])}
		}
	case LevelQuiz:
		p.applyQuiz(res)
	}
	return nil
}

// Perform executes req against f. It makes exactly one attempt.
func Perform(ctx context.Context, f Fetcher, req Request) Result {
	res := Result{Request: req}
	var err error
	switch req.Level {
	case LevelLanguages:
		res.Languages, err = f.Languages(ctx)
	case LevelLessons:
		res.Lessons, err = f.Lessons(ctx, req.ID)
	case LevelQuiz:
		res.Quiz, err = f.Quiz(ctx, req.ID)
	}
	if err != nil {
		res.Err = &FetchError{Level: req.Level, Err: err}
	}
	return res
}

// Drive performs reqs and every follow-up request synchronously, in order.
func (p *Pipeline) Drive(ctx context.Context, f Fetcher, reqs ...Request) {
	queue := append([]Request(nil), reqs...)
	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]
		if !p.Current(req) {
			continue
		}
		queue = append(queue, p.Apply(Perform(ctx, f, req))...)
	}
}

func (p *Pipeline) applyQuiz(res Result) {
	lessonID := res.ID.String()

	var payload any
	if raw := bytes.TrimSpace(res.Quiz); len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			p.levels[LevelQuiz].Err = LevelQuiz.Message()
			p.log.Warn("decode quiz", zap.String("lesson", lessonID), zap.Error(err))
			return
		}
	}

	for _, prob := range quiz.Lint(payload) {
		p.log.Warn("malformed quiz item",
			zap.String("lesson", lessonID),
			zap.Int("position", prob.Position),
			zap.String("item", prob.ItemID),
			zap.String("problem", prob.Message),
		)
	}

	items := quiz.NormalizeItems(payload)
	p.session = session.New(lessonID, items, p.completion, p.log)
	p.log.Debug("quiz loaded",
		zap.String("lesson", lessonID),
		zap.Int("items", len(items)),
		zap.String("attempt", p.session.AttemptID()),
	)
}

// clearFrom empties every level from l downward and invalidates their
// outstanding requests.
func (p *Pipeline) clearFrom(l Level) {
	if l <= LevelLessons {
		p.lesson = nil
		p.lessons = []content.Lesson{}
	}
	p.session = session.Empty()
	for i := l; i < numLevels; i++ {
		p.levels[i].gen++
		p.levels[i].Loading = false
		p.levels[i].Err = ""
	}
}

// begin marks l as loading under a fresh generation.
func (p *Pipeline) begin(l Level, id content.ID) Request {
	ls := &p.levels[l]
	ls.gen++
	ls.Loading = true
	ls.Err = ""
	return Request{Level: l, Gen: ls.gen, ID: id}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
