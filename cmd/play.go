package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Browse lessons and take quizzes in the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
