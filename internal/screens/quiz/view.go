package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/session"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/components"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	q.sync()

	ls := q.pipeline.Level(loader.LevelQuiz)
	st := q.pipeline.Session()

	switch {
	case ls.Loading:
		return renderCentered(width, theme.Subtitle.Render("Loading quiz..."))
	case ls.Err != "":
		return renderCentered(width,
			theme.ErrorText.Render(ls.Err)+"\n\n"+theme.Hint.Render("Press R to retry."))
	case st.Total() == 0:
		return renderCentered(width, theme.Subtitle.Render("This lesson has no quiz."))
	case st.Finished():
		return q.renderSummary(st, width)
	}
	return q.renderQuestion(st, width)
}

func (q *QuizScreen) renderQuestion(st *session.State, width int) string {
	it, _ := st.CurrentItem()
	inner := width - 4

	var b strings.Builder
	b.WriteString(q.renderStatusLine(st, inner))
	b.WriteString("\n")
	bar := components.NewProgressBar("Question", st.Index()+1, st.Total(), inner)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		Foreground(theme.Text).
		Bold(true).
		Render(it.Question))
	b.WriteString("\n\n")

	if it.IsMultipleChoice() {
		if len(it.Options) == 0 {
			b.WriteString(theme.Hint.Render("This question has no options."))
			b.WriteString("\n")
		} else {
			b.WriteString(q.mc.View())
		}
	} else {
		b.WriteString("Answer: " + q.input.View())
		b.WriteString("\n")
	}

	if fb := st.Feedback(); fb != nil {
		b.WriteString("\n")
		if fb.Correct {
			b.WriteString(theme.Correct.Render("✓ " + fb.Message))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ " + fb.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var btn components.Button
	switch {
	case st.CanAdvance():
		btn = components.NewButton("Enter", nextLabel(st), true)
	case it.IsMultipleChoice():
		btn = components.NewButton("Enter", "Choose", len(it.Options) > 0)
	default:
		btn = components.NewButton("Enter", "Check", strings.TrimSpace(q.input.Value()) != "")
	}
	b.WriteString(btn.View())

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (q *QuizScreen) renderSummary(st *session.State, width int) string {
	sum := session.BuildSummary(st)
	inner := width - 4

	var b strings.Builder
	b.WriteString(q.renderStatusLine(st, inner))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Quiz summary"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d/%d", sum.Score, sum.Total)))
	b.WriteString("\n")
	bar := components.NewProgressBar("", sum.Score, sum.Total, inner/2)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	if sum.Passed {
		b.WriteString(theme.Correct.Render(sum.Message))
	} else {
		b.WriteString(theme.Subtitle.Render(sum.Message))
	}
	b.WriteString("\n\n")

	buttons := []string{
		components.NewButton("Enter", "Back to lessons", true).View(),
		components.NewButton("n", "Next lesson", q.nextLessonIndex() >= 0).View(),
		components.NewButton("Ctrl+R", "Try again", true).View(),
	}
	b.WriteString(strings.Join(buttons, "  "))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// renderStatusLine shows the lesson title and whether it is completed.
func (q *QuizScreen) renderStatusLine(st *session.State, width int) string {
	left := theme.Title.Render(q.Title())
	var right string
	if st.Done() {
		right = theme.BadgeDone.Render("✓ completed")
	} else {
		right = theme.BadgePending.Render("not completed")
	}
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func renderCentered(width int, s string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + s)
}
