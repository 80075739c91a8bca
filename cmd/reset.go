package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [lessonID]",
	Short: "Clear the completion record of a lesson",
	Args: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer e.Close()

		ids := args
		if all, _ := cmd.Flags().GetBool("all"); all {
			ids, err = e.tracker.Completed(cmd.Context())
			if err != nil {
				return fmt.Errorf("list completed lessons: %w", err)
			}
		}
		for _, id := range ids {
			e.tracker.ClearDone(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Progress reset for lesson %s.\n", id)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No completed lessons.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Clear every completed lesson")
}
