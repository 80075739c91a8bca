package browse

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/router"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/screen"
	quizscreen "github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/screens/quiz"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/session"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/components"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/layout"
)

type pane int

const (
	paneLanguages pane = iota
	paneLessons
)

// BrowseScreen lists languages and the lessons of the selected language.
type BrowseScreen struct {
	pipeline   *loader.Pipeline
	completion session.Completion

	focus   pane
	langs   components.List
	lessons components.List
	notice  string
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates a BrowseScreen over p. completion drives the done badges
// and the reset action; it may be nil.
func New(p *loader.Pipeline, completion session.Completion) *BrowseScreen {
	b := &BrowseScreen{
		pipeline:   p,
		completion: completion,
		langs:      components.NewList(nil),
		lessons:    components.NewList(nil),
	}
	b.langs.Focused = true
	b.sync()
	return b
}

func (b *BrowseScreen) Init() tea.Cmd {
	return nil
}

func (b *BrowseScreen) Title() string {
	return "Lessons"
}

func (b *BrowseScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch pane"},
		{Key: "Enter", Description: "Select"},
	}
	if b.focus == paneLessons {
		hints[1].Description = "Open quiz"
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Reset progress"})
	}
	if _, ok := b.failedLevel(); ok {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (b *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loader.Result:
		b.sync()
		b.followSelection()
		return b, nil

	case tea.KeyMsg:
		b.sync()
		return b.handleKey(msg)
	}
	return b, nil
}

func (b *BrowseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		b.toggleFocus()
		return b, nil

	case "enter":
		if b.focus == paneLanguages {
			return b, b.selectLanguage()
		}
		return b, b.openLesson()

	case "r":
		if b.focus == paneLessons {
			b.resetHighlighted()
		}
		return b, nil

	case "R":
		l, ok := b.failedLevel()
		if !ok {
			return b, nil
		}
		req, ok := b.pipeline.Retry(l)
		if !ok {
			return b, nil
		}
		b.notice = ""
		b.sync()
		return b, screen.Fetch(req)
	}

	var cmd tea.Cmd
	if b.focus == paneLanguages {
		b.langs, cmd = b.langs.Update(msg)
	} else {
		b.lessons, cmd = b.lessons.Update(msg)
	}
	return b, cmd
}

func (b *BrowseScreen) selectLanguage() tea.Cmd {
	langs := b.pipeline.Languages()
	if len(langs) == 0 {
		return nil
	}
	req := b.pipeline.SelectLanguage(langs[b.langs.Selected])
	b.notice = ""
	b.sync()
	b.setFocus(paneLessons)
	return screen.Fetch(req)
}

// openLesson selects the highlighted lesson if it is not the current one
// and opens the quiz screen.
func (b *BrowseScreen) openLesson() tea.Cmd {
	lessons := b.pipeline.Lessons()
	if len(lessons) == 0 {
		return nil
	}
	lesson := lessons[b.lessons.Selected]
	b.notice = ""

	var cmds []tea.Cmd
	cur, ok := b.pipeline.SelectedLesson()
	if !ok || cur.ID != lesson.ID || b.pipeline.Level(loader.LevelQuiz).Err != "" {
		cmds = append(cmds, screen.Fetch(b.pipeline.SelectLesson(lesson)))
	}
	qs := quizscreen.New(b.pipeline, b.completion)
	cmds = append(cmds, func() tea.Msg {
		return router.PushScreenMsg{Screen: qs}
	})
	return tea.Batch(cmds...)
}

// resetHighlighted clears the completion of the highlighted lesson. When
// that lesson's quiz is loaded the attempt restarts too.
func (b *BrowseScreen) resetHighlighted() {
	lessons := b.pipeline.Lessons()
	if len(lessons) == 0 {
		return
	}
	lesson := lessons[b.lessons.Selected]
	id := lesson.ID.String()

	if st := b.pipeline.Session(); st.LessonID() == id {
		st.Reset()
	} else if b.completion != nil {
		b.completion.ClearDone(id)
	}
	b.notice = "Progress reset for " + lessonTitle(lesson) + "."
	b.sync()
}

// failedLevel returns the first level whose last fetch failed.
func (b *BrowseScreen) failedLevel() (loader.Level, bool) {
	for _, l := range []loader.Level{loader.LevelLanguages, loader.LevelLessons, loader.LevelQuiz} {
		if b.pipeline.Level(l).Err != "" {
			return l, true
		}
	}
	return 0, false
}

func (b *BrowseScreen) toggleFocus() {
	if b.focus == paneLanguages {
		b.setFocus(paneLessons)
	} else {
		b.setFocus(paneLanguages)
	}
}

func (b *BrowseScreen) setFocus(p pane) {
	b.focus = p
	b.langs.Focused = p == paneLanguages
	b.lessons.Focused = p == paneLessons
}

// sync rebuilds both lists from the pipeline.
func (b *BrowseScreen) sync() {
	langs := b.pipeline.Languages()
	items := make([]components.ListItem, len(langs))
	for i, l := range langs {
		items[i] = components.ListItem{Label: languageLabel(l)}
	}
	b.langs.SetItems(items)

	lessons := b.pipeline.Lessons()
	items = make([]components.ListItem, len(lessons))
	for i, l := range lessons {
		items[i] = components.ListItem{Label: lessonTitle(l)}
		if b.completion != nil && b.completion.IsDone(l.ID.String()) {
			items[i].Badge = "✓ done"
			items[i].Done = true
		}
	}
	b.lessons.SetItems(items)
}

// followSelection moves the cursors onto the pipeline's selection.
func (b *BrowseScreen) followSelection() {
	if lang, ok := b.pipeline.SelectedLanguage(); ok {
		for i, l := range b.pipeline.Languages() {
			if l.ID == lang.ID {
				b.langs.Selected = i
				break
			}
		}
	}
	if lesson, ok := b.pipeline.SelectedLesson(); ok {
		for i, l := range b.pipeline.Lessons() {
			if l.ID == lesson.ID {
				b.lessons.Selected = i
				break
			}
		}
	}
}

// highlighted returns the lesson under the cursor.
func (b *BrowseScreen) highlighted() (content.Lesson, bool) {
	lessons := b.pipeline.Lessons()
	if len(lessons) == 0 {
		return content.Lesson{}, false
	}
	return lessons[b.lessons.Selected], true
}

func languageLabel(l content.Language) string {
	name := l.Name
	if name == "" {
		name = l.ID.String()
	}
	if l.Level != "" {
		name += " (" + l.Level + ")"
	}
	return name
}

func lessonTitle(l content.Lesson) string {
	if l.Title != "" {
		return l.Title
	}
	return "Lesson " + l.ID.String()
}
