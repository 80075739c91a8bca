package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/logging"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve languages, lessons and quizzes from a local data directory",
	Long: `Run a local content API with the same endpoints the client uses:

  GET /languages
  GET /lessons/{languageID}
  GET /quiz/{lessonID}

Content is read from languages.json, lessons.json and quizzes.json in the
data directory on every request. Prometheus metrics are exposed on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Options{
			DataDir:        cfg.Serve.DataDir,
			AllowedOrigins: cfg.Serve.AllowedOrigins,
			Logger:         log,
		})
		log.Info("content server starting",
			zap.String("addr", cfg.Serve.Addr),
			zap.String("data", cfg.Serve.DataDir),
		)
		return srv.ListenAndServe(ctx, cfg.Serve.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8000)")
	serveCmd.Flags().String("data", "", "Directory with languages.json, lessons.json and quizzes.json (default ./data)")
}
