package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completed lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.Close()

		ids, err := e.tracker.Completed(cmd.Context())
		if err != nil {
			return fmt.Errorf("list completed lessons: %w", err)
		}
		out := cmd.OutOrStdout()
		for _, id := range ids {
			fmt.Fprintf(out, "✓ %s\n", id)
		}
		fmt.Fprintf(out, "%d lessons completed\n", len(ids))
		return nil
	},
}
