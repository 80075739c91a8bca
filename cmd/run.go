package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting TUI", zap.String("api", e.cfg.APIBaseURL))
	return app.Run(cmd.Context(), app.Deps{
		Fetcher:  e.client(),
		Progress: e.tracker,
		Logger:   e.log,
	})
}
