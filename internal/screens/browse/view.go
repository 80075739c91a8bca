package browse

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/layout"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/theme"
)

func (b *BrowseScreen) View(width, height int) string {
	b.sync()

	// Panes have a border (2) and padding (2).
	leftW := width / 3
	if leftW < 24 {
		leftW = 24
	}
	rightW := width - leftW - 1
	if layout.IsCompactWidth(width) {
		leftW = width - 4
		rightW = width - 4
	}
	listH := height - 6
	if listH < 3 {
		listH = 3
	}

	left := b.renderLanguages(leftW-4, listH)
	right := b.renderLessons(rightW-4, listH)

	leftStyle, rightStyle := theme.Pane, theme.Pane
	if b.focus == paneLanguages {
		leftStyle = theme.PaneFocused
	} else {
		rightStyle = theme.PaneFocused
	}
	left = leftStyle.Width(leftW).Render(left)
	right = rightStyle.Width(rightW).Render(right)

	var body string
	if layout.IsCompactWidth(width) {
		if b.focus == paneLanguages {
			body = left
		} else {
			body = right
		}
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}

	if b.notice != "" {
		body += "\n" + theme.Hint.Render("  "+b.notice)
	}
	return body
}

func (b *BrowseScreen) renderLanguages(width, height int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Languages"))
	sb.WriteString("\n\n")

	ls := b.pipeline.Level(loader.LevelLanguages)
	switch {
	case ls.Loading:
		sb.WriteString(theme.Subtitle.Render("Loading languages..."))
	case ls.Err != "":
		sb.WriteString(renderError(ls.Err))
	case len(b.langs.Items) == 0:
		sb.WriteString(theme.Subtitle.Render("No languages available."))
	default:
		sb.WriteString(b.langs.View(height))
	}
	return sb.String()
}

func (b *BrowseScreen) renderLessons(width, height int) string {
	var sb strings.Builder
	title := "Lessons"
	if lang, ok := b.pipeline.SelectedLanguage(); ok {
		title += ": " + languageLabel(lang)
	}
	sb.WriteString(theme.Title.Render(title))
	sb.WriteString("\n\n")

	ls := b.pipeline.Level(loader.LevelLessons)
	if _, ok := b.pipeline.SelectedLanguage(); !ok && !ls.Loading && ls.Err == "" {
		sb.WriteString(theme.Subtitle.Render("Select a language."))
		return sb.String()
	}
	switch {
	case ls.Loading:
		sb.WriteString(theme.Subtitle.Render("Loading lessons..."))
		return sb.String()
	case ls.Err != "":
		sb.WriteString(renderError(ls.Err))
		return sb.String()
	case len(b.lessons.Items) == 0:
		sb.WriteString(theme.Subtitle.Render("This language has no lessons yet."))
		return sb.String()
	}

	listH := height / 2
	if listH < 3 {
		listH = 3
	}
	sb.WriteString(b.lessons.View(listH))

	if lesson, ok := b.highlighted(); ok && lesson.Content != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Width(width).
			MaxHeight(height-listH-2).
			Foreground(theme.Text).
			Render(lesson.Content))
	}

	if qs := b.pipeline.Level(loader.LevelQuiz); qs.Err != "" {
		sb.WriteString("\n\n")
		sb.WriteString(renderError(qs.Err))
	}
	return sb.String()
}

// renderError leaves wrapping to the enclosing pane.
func renderError(msg string) string {
	return theme.ErrorText.Render(msg) + "\n" + theme.Hint.Render("Press R to retry.")
}
