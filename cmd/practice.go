package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/quiz"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Take a lesson's quiz on plain stdin/stdout",
	Long: `Fetch a lesson's quiz and answer it line by line.

Multiple-choice questions take the option number. Free-text questions take
the answer; type ? to fill in the example answer. A fully correct run marks
the lesson as completed, just like the terminal UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		languageID, _ := cmd.Flags().GetString("language")
		lessonID, _ := cmd.Flags().GetString("lesson")

		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.Close()

		return runPractice(cmd.Context(), practiceOptions{
			Fetcher:    e.client(),
			Completion: e.tracker,
			Logger:     e.log,
			LanguageID: content.ID(languageID),
			LessonID:   content.ID(lessonID),
			In:         cmd.InOrStdin(),
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	practiceCmd.Flags().String("language", "", "Language ID (required)")
	practiceCmd.Flags().String("lesson", "", "Lesson ID (default: first lesson of the language)")
	_ = practiceCmd.MarkFlagRequired("language")
}

type practiceOptions struct {
	Fetcher    loader.Fetcher
	Completion session.Completion
	Logger     *zap.Logger
	LanguageID content.ID
	LessonID   content.ID
	In         io.Reader
	Out        io.Writer
}

// exampleKey fills in the expected answer of a free-text question.
const exampleKey = "?"

func runPractice(ctx context.Context, opts practiceOptions) error {
	p := loader.New(opts.Completion, opts.Logger)

	p.Drive(ctx, opts.Fetcher, p.SelectLanguage(content.Language{ID: opts.LanguageID}))
	if err := levelErr(p, loader.LevelLessons); err != nil {
		return err
	}
	if len(p.Lessons()) == 0 {
		return fmt.Errorf("language %q has no lessons", opts.LanguageID)
	}

	if opts.LessonID != "" {
		lesson, ok := findLesson(p.Lessons(), opts.LessonID)
		if !ok {
			return fmt.Errorf("lesson %q not found in language %q", opts.LessonID, opts.LanguageID)
		}
		if cur, _ := p.SelectedLesson(); cur.ID != lesson.ID {
			p.Drive(ctx, opts.Fetcher, p.SelectLesson(lesson))
		}
	}
	if err := levelErr(p, loader.LevelQuiz); err != nil {
		return err
	}

	lesson, _ := p.SelectedLesson()
	st := p.Session()
	out := opts.Out

	fmt.Fprintf(out, "Lesson: %s\n", lessonTitle(lesson))
	if st.Total() == 0 {
		fmt.Fprintln(out, "This lesson has no quiz.")
		return nil
	}
	if st.Done() {
		fmt.Fprintln(out, "Already completed. A run with mistakes keeps it completed.")
	}
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(opts.In)
	for !st.Finished() {
		it, _ := st.CurrentItem()
		if !st.CanAdvance() {
			printItem(out, st, it)
			if !answer(out, scanner, st, it) {
				fmt.Fprintln(out, "\n(input closed)")
				return nil
			}
			printFeedback(out, st, it)
		}
		st.Advance()
	}

	sum := session.BuildSummary(st)
	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", sum.Score, sum.Total)
	fmt.Fprintln(out, sum.Message)
	return nil
}

// answer prompts until the current item is answered. It reports false when
// the input ends first.
func answer(out io.Writer, scanner *bufio.Scanner, st *session.State, it quiz.Item) bool {
	for !st.CanAdvance() {
		fmt.Fprint(out, "Your answer: ")
		if !scanner.Scan() {
			return false
		}
		line := strings.TrimRight(scanner.Text(), "\r")

		if it.IsMultipleChoice() {
			if len(it.Options) == 0 {
				st.AnswerMultipleChoice(-1)
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n < 1 || n > len(it.Options) {
				fmt.Fprintf(out, "Enter a number from 1 to %d.\n", len(it.Options))
				continue
			}
			st.AnswerMultipleChoice(n - 1)
			continue
		}

		if strings.TrimSpace(line) == exampleKey {
			if st.ShowExample() {
				fmt.Fprintf(out, "Example: %s\n", st.Draft())
			}
			continue
		}
		st.SetDraft(line)
		if !st.SubmitDraft() {
			fmt.Fprintln(out, "(empty answer)")
		}
	}
	return true
}

func printItem(out io.Writer, st *session.State, it quiz.Item) {
	fmt.Fprintf(out, "── Question %d/%d ──\n", st.Index()+1, st.Total())
	fmt.Fprintln(out, it.Question)
	if it.IsMultipleChoice() {
		for i, opt := range it.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}
	}
	if it.IsFreeText() && it.Placeholder != "" {
		fmt.Fprintf(out, "(%s)\n", it.Placeholder)
	}
}

func printFeedback(out io.Writer, st *session.State, it quiz.Item) {
	fb := st.Feedback()
	if fb == nil {
		return
	}
	if fb.Correct {
		fmt.Fprintf(out, "✓ %s\n\n", fb.Message)
		return
	}
	switch {
	case it.IsMultipleChoice() && it.AnswerIndex >= 0 && it.AnswerIndex < len(it.Options):
		fmt.Fprintf(out, "✗ %s Answer: %s\n\n", fb.Message, it.Options[it.AnswerIndex])
	case it.IsFreeText() && it.AnswerText != "":
		fmt.Fprintf(out, "✗ %s Answer: %s\n\n", fb.Message, it.AnswerText)
	default:
		fmt.Fprintf(out, "✗ %s\n\n", fb.Message)
	}
}

// levelErr returns the fetch error shown for level l, if any.
func levelErr(p *loader.Pipeline, l loader.Level) error {
	if msg := p.Level(l).Err; msg != "" {
		return errors.New(msg)
	}
	return nil
}

func findLesson(lessons []content.Lesson, id content.ID) (content.Lesson, bool) {
	for _, l := range lessons {
		if l.ID == id {
			return l, true
		}
	}
	return content.Lesson{}, false
}

func lessonTitle(l content.Lesson) string {
	if l.Title == "" {
		return l.ID.String()
	}
	return fmt.Sprintf("%s (%s)", l.Title, l.ID)
}
