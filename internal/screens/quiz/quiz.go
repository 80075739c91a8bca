package quiz

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/router"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/screen"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/session"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/components"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/layout"
)

const defaultPlaceholder = "Type your answer..."

// QuizScreen runs the quiz session of the selected lesson.
type QuizScreen struct {
	pipeline   *loader.Pipeline
	completion session.Completion

	// The session and position the widgets were built for.
	state   *session.State
	attempt string
	index   int

	mc    components.MultiChoice
	input components.TextInput
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen showing p's current session.
func New(p *loader.Pipeline, completion session.Completion) *QuizScreen {
	q := &QuizScreen{
		pipeline:   p,
		completion: completion,
		input:      components.NewTextInput(defaultPlaceholder, 200),
	}
	q.sync()
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	return q.input.Init()
}

func (q *QuizScreen) Title() string {
	if lesson, ok := q.pipeline.SelectedLesson(); ok && lesson.Title != "" {
		return lesson.Title
	}
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	st := q.pipeline.Session()
	if q.pipeline.Level(loader.LevelQuiz).Err != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if st.Finished() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to lessons"},
			{Key: "n", Description: "Next lesson"},
			{Key: "Ctrl+R", Description: "Try again"},
		}
	}
	it, ok := st.CurrentItem()
	if !ok {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if st.CanAdvance() {
		return []layout.KeyHint{
			{Key: "Enter", Description: nextLabel(st)},
			{Key: "Ctrl+R", Description: "Reset"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if it.IsMultipleChoice() {
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+E", Description: "Show example"},
		{Key: "Esc", Description: "Back"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loader.Result:
		return q, q.sync()

	case tea.KeyMsg:
		cmd := q.sync()
		next, kcmd := q.handleKey(msg)
		return next, tea.Batch(cmd, kcmd)
	}

	if q.freeTextOpen() {
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	st := q.pipeline.Session()
	key := msg.String()

	if key == "ctrl+r" {
		if st.Total() == 0 {
			return q, nil
		}
		st.Reset()
		return q, q.sync()
	}

	if q.pipeline.Level(loader.LevelQuiz).Err != "" {
		if key == "R" {
			if req, ok := q.pipeline.Retry(loader.LevelQuiz); ok {
				return q, tea.Batch(q.sync(), screen.Fetch(req))
			}
		}
		return q, nil
	}

	if st.Finished() {
		switch key {
		case "enter":
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "n":
			return q, q.nextLesson()
		}
		return q, nil
	}

	it, ok := st.CurrentItem()
	if !ok {
		return q, nil
	}

	if st.CanAdvance() {
		if key == "enter" {
			st.Advance()
			return q, q.sync()
		}
		return q, nil
	}

	if it.IsMultipleChoice() {
		return q, q.handleChoiceKey(st, msg)
	}
	return q, q.handleTextKey(st, msg)
}

func (q *QuizScreen) handleChoiceKey(st *session.State, msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
		idx := n - 1
		if idx < len(q.mc.Options) && st.AnswerMultipleChoice(idx) {
			q.mc.Choose(idx)
		}
		return nil
	}

	if key == "enter" {
		if len(q.mc.Options) == 0 {
			// Nothing to pick; record the miss so the quiz can go on.
			st.AnswerMultipleChoice(-1)
			return nil
		}
		idx := q.mc.Selected
		if st.AnswerMultipleChoice(idx) {
			q.mc.Choose(idx)
		}
		return nil
	}

	var cmd tea.Cmd
	q.mc, cmd = q.mc.Update(msg)
	return cmd
}

func (q *QuizScreen) handleTextKey(st *session.State, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		st.SetDraft(q.input.Value())
		if st.SubmitDraft() {
			q.input.Submit(st.Feedback().Correct)
		}
		return nil
	case "ctrl+e":
		if st.ShowExample() {
			q.input.SetValue(st.Draft())
		}
		return nil
	}

	var cmd tea.Cmd
	q.input, cmd = q.input.Update(msg)
	st.SetDraft(q.input.Value())
	return cmd
}

// nextLesson selects the lesson after the current one and swaps this
// screen for a fresh quiz screen. The summary stays when there is none.
func (q *QuizScreen) nextLesson() tea.Cmd {
	i := q.nextLessonIndex()
	if i < 0 {
		return nil
	}
	req := q.pipeline.SelectLesson(q.pipeline.Lessons()[i])
	next := New(q.pipeline, q.completion)
	return tea.Batch(
		screen.Fetch(req),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

// nextLessonIndex returns the position of the lesson after the selected
// one, or -1.
func (q *QuizScreen) nextLessonIndex() int {
	cur, ok := q.pipeline.SelectedLesson()
	if !ok {
		return -1
	}
	lessons := q.pipeline.Lessons()
	for i, l := range lessons {
		if l.ID == cur.ID && i+1 < len(lessons) {
			return i + 1
		}
	}
	return -1
}

func (q *QuizScreen) freeTextOpen() bool {
	st := q.pipeline.Session()
	it, ok := st.CurrentItem()
	return ok && it.IsFreeText() && !st.CanAdvance()
}

// sync rebuilds the answer widgets when the session, the attempt or the
// current item changed underneath the screen.
func (q *QuizScreen) sync() tea.Cmd {
	st := q.pipeline.Session()
	if st == q.state && st.AttemptID() == q.attempt && st.Index() == q.index {
		return nil
	}
	q.state = st
	q.attempt = st.AttemptID()
	q.index = st.Index()

	it, ok := st.CurrentItem()
	if !ok {
		q.mc = components.NewMultiChoice(nil, -1)
		return nil
	}
	q.mc = components.NewMultiChoice(it.Options, it.AnswerIndex)

	placeholder := it.Placeholder
	if placeholder == "" {
		placeholder = defaultPlaceholder
	}
	cmd := q.input.Reset(placeholder)
	if d := st.Draft(); d != "" {
		q.input.SetValue(d)
	}
	return cmd
}

func nextLabel(st *session.State) string {
	if st.IsLast() {
		return "Finish"
	}
	return "Next"
}
