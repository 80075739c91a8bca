package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/router"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/screen"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/screens/browse"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/session"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/layout"
)

// Progress records lesson completion. progress.Tracker satisfies it.
type Progress interface {
	session.Completion
	Completed(ctx context.Context) ([]string, error)
}

// Deps holds the dependencies injected into the TUI.
type Deps struct {
	Fetcher  loader.Fetcher
	Progress Progress
	Logger   *zap.Logger
}

// AppModel is the root Bubble Tea model. It owns the fetch pipeline:
// screens emit loader.Request messages, the model performs them and
// broadcasts every loader.Result to the whole screen stack.
type AppModel struct {
	ctx      context.Context
	router   *router.Router
	pipeline *loader.Pipeline
	fetcher  loader.Fetcher
	progress Progress
	log      *zap.Logger

	initCmd   tea.Cmd
	completed int
	width     int
	height    int
}

// newAppModel creates an AppModel on the browse screen and queues the
// initial languages fetch.
func newAppModel(ctx context.Context, deps Deps) AppModel {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var completion session.Completion
	if deps.Progress != nil {
		completion = deps.Progress
	}
	p := loader.New(completion, log)

	m := AppModel{
		ctx:      ctx,
		pipeline: p,
		fetcher:  deps.Fetcher,
		progress: deps.Progress,
		log:      log,
	}
	req := p.LoadLanguages()
	m.router = router.New(browse.New(p, completion))
	m.initCmd = m.perform(req)
	m.refreshCompleted()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loader.Request:
		return m, m.perform(msg)

	case loader.Result:
		follow := m.pipeline.Apply(msg)
		cmds := make([]tea.Cmd, 0, len(follow)+1)
		for _, req := range follow {
			cmds = append(cmds, m.perform(req))
		}
		cmds = append(cmds, m.router.Broadcast(msg))
		m.refreshCompleted()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
		cmd := m.router.Update(msg)
		m.refreshCompleted()
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// perform runs req off the update loop. The pipeline drops the result if
// the selection moved on in the meantime.
func (m AppModel) perform(req loader.Request) tea.Cmd {
	ctx, f := m.ctx, m.fetcher
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		return loader.Perform(ctx, f, req)
	}
}

func (m *AppModel) refreshCompleted() {
	if m.progress == nil {
		return
	}
	ids, err := m.progress.Completed(m.ctx)
	if err != nil {
		m.log.Warn("count completed lessons", zap.Error(err))
		return
	}
	m.completed = len(ids)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.completed, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newAppModel(ctx, deps), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
