package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
)

var listCmd = &cobra.Command{
	Use:   "list [languageID]",
	Short: "List languages, or the lessons of one language",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.Close()

		if len(args) == 0 {
			return printLanguages(cmd.Context(), cmd.OutOrStdout(), e.client())
		}
		return printLessons(cmd.Context(), cmd.OutOrStdout(), e.client(), content.ID(args[0]), e.tracker)
	},
}

type doneChecker interface {
	IsDone(lessonID string) bool
}

func printLanguages(ctx context.Context, w io.Writer, f loader.Fetcher) error {
	langs, err := f.Languages(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", loader.LevelLanguages.Message(), err)
	}

	fmt.Fprintf(w, "%-16s  %-30s  %s\n", "ID", "Name", "Level")
	fmt.Fprintln(w, strings.Repeat("─", 64))
	for _, l := range langs {
		fmt.Fprintf(w, "%-16s  %-30s  %s\n", l.ID, truncate(l.Name, 30), l.Level)
	}
	fmt.Fprintf(w, "\n%d languages\n", len(langs))
	return nil
}

func printLessons(ctx context.Context, w io.Writer, f loader.Fetcher, languageID content.ID, done doneChecker) error {
	lessons, err := f.Lessons(ctx, languageID)
	if err != nil {
		return fmt.Errorf("%s: %w", loader.LevelLessons.Message(), err)
	}

	fmt.Fprintf(w, "%-4s  %-16s  %s\n", "Done", "ID", "Title")
	fmt.Fprintln(w, strings.Repeat("─", 64))
	var completed int
	for _, l := range lessons {
		mark := ""
		if done != nil && done.IsDone(l.ID.String()) {
			mark = "✓"
			completed++
		}
		fmt.Fprintf(w, "%-4s  %-16s  %s\n", mark, l.ID, truncate(l.Title, 40))
	}
	fmt.Fprintf(w, "\n%d lessons, %d completed\n", len(lessons), completed)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
