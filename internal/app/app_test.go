package app

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
)

type stubFetcher struct {
	calls int
}

func (f *stubFetcher) Languages(context.Context) ([]content.Language, error) {
	f.calls++
	return []content.Language{{ID: "py", Name: "Python"}, {ID: "go", Name: "Go"}}, nil
}

func (f *stubFetcher) Lessons(_ context.Context, id content.ID) ([]content.Lesson, error) {
	f.calls++
	return []content.Lesson{{ID: id + "-1", Title: "First " + string(id)}}, nil
}

func (f *stubFetcher) Quiz(context.Context, content.ID) (json.RawMessage, error) {
	f.calls++
	return json.RawMessage(`[{"id":"a","question":"Q","options":["x","y"],"answer_index":0}]`), nil
}

type memProgress map[string]bool

func (p memProgress) IsDone(id string) bool { return p[id] }
func (p memProgress) MarkDone(id string)    { p[id] = true }
func (p memProgress) ClearDone(id string)   { delete(p, id) }

func (p memProgress) Completed(context.Context) ([]string, error) {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// drain runs cmd and feeds every loader message it yields back into m
// until no commands are left.
func drain(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case loader.Request, loader.Result:
			next, nc := m.Update(msg)
			m = next.(AppModel)
			queue = append(queue, nc)
		}
	}
	return m
}

func TestAppModel_InitialCascade(t *testing.T) {
	f := &stubFetcher{}
	m := newAppModel(context.Background(), Deps{Fetcher: f, Progress: memProgress{}})

	m = drain(t, m, m.Init())

	if f.calls != 3 {
		t.Errorf("fetch calls = %d, want 3", f.calls)
	}
	lesson, ok := m.pipeline.SelectedLesson()
	if !ok || lesson.ID != "py-1" {
		t.Errorf("selected lesson = %q, want py-1", lesson.ID)
	}
	if m.pipeline.Session().Total() != 1 {
		t.Errorf("session items = %d, want 1", m.pipeline.Session().Total())
	}
}

func TestAppModel_StaleResultDropped(t *testing.T) {
	f := &stubFetcher{}
	m := newAppModel(context.Background(), Deps{Fetcher: f})
	m = drain(t, m, m.Init())

	old := m.pipeline.SelectLanguage(content.Language{ID: "py"})
	oldRes := loader.Perform(context.Background(), f, old)
	m = drain(t, m, func() tea.Msg { return m.pipeline.SelectLanguage(content.Language{ID: "go"}) })

	next, _ := m.Update(oldRes)
	m = next.(AppModel)
	if lesson, _ := m.pipeline.SelectedLesson(); lesson.ID != "go-1" {
		t.Errorf("selected lesson = %q, want go-1", lesson.ID)
	}
}

func TestAppModel_HeaderShowsCompleted(t *testing.T) {
	m := newAppModel(context.Background(), Deps{Fetcher: &stubFetcher{}, Progress: memProgress{"py-1": true}})
	m = drain(t, m, m.Init())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	view := m.render()
	if !strings.Contains(view, "Nauka") {
		t.Error("expected app name in header")
	}
	if !strings.Contains(view, "1 completed") {
		t.Errorf("expected completed count in header, got:\n%s", view)
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(context.Background(), Deps{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)

	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestAppModel_Keys(t *testing.T) {
	m := newAppModel(context.Background(), Deps{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected esc on the root screen to do nothing")
	}
}

func TestAppModel_NoFetcher(t *testing.T) {
	m := newAppModel(context.Background(), Deps{})
	if m.Init() != nil {
		t.Error("expected no initial fetch without a fetcher")
	}
}
