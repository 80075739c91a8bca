package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/config"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/content"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/logging"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/progress"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "nauka",
	Short: "Learn programming languages lesson by lesson",
	Long:  "Nauka: terminal client that walks through languages, lessons and quizzes served by a content API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: <user config dir>/nauka/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NAUKA_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "Base URL of the content API (overrides NAUKA_API_BASE_URL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration, letting the command's flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// env is what most commands need: config, logger and the progress store.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	tracker *progress.Tracker
}

// setup loads config, builds the logger and opens the store. console, when
// non-nil, also receives human-readable log lines.
func setup(cmd *cobra.Command, console io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	return &env{
		cfg:     cfg,
		log:     log,
		store:   st,
		tracker: progress.NewTracker(st.KVRepo(), log),
	}, nil
}

// client returns a content API client configured from e.
func (e *env) client() *content.Client {
	return content.NewClient(e.cfg.APIBaseURL,
		content.WithTimeout(e.cfg.HTTPTimeout),
		content.WithLogger(e.log),
	)
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
	_ = e.log.Sync()
}

// resolveDBPath returns the database path using --db / db_path (highest
// priority), then the NAUKA_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
