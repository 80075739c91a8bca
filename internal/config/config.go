// Package config loads nauka settings from defaults, an optional YAML file,
// NAUKA_* environment variables and command-line flags, in rising priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "NAUKA"

// Config holds all application configuration.
type Config struct {
	// APIBaseURL is the root of the content service.
	APIBaseURL string `mapstructure:"api_base_url"`

	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string `mapstructure:"db_path"`

	// HTTPTimeout bounds each content request. Zero disables the timeout.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	Log   LogConfig   `mapstructure:"log"`
	Serve ServeConfig `mapstructure:"serve"`
}

// LogConfig configures the rotated log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ServeConfig configures the local content server.
type ServeConfig struct {
	Addr           string   `mapstructure:"addr"`
	DataDir        string   `mapstructure:"data_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"api":  "api_base_url",
	"db":   "db_path",
	"addr": "serve.addr",
	"data": "serve.data_dir",
}

// Load builds a Config. file may be empty, in which case config.yaml is
// looked up in the user config directory and skipped when missing. flags
// may be nil; only the flags listed in flagKeys are consulted.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "nauka"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		APIBaseURL: "http://127.0.0.1:8000",
		Log: LogConfig{
			File:       DefaultLogPath(),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Serve: ServeConfig{
			Addr:           ":8000",
			DataDir:        "data",
			AllowedOrigins: []string{"*"},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_base_url", d.APIBaseURL)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.data_dir", d.Serve.DataDir)
	v.SetDefault("serve.allowed_origins", d.Serve.AllowedOrigins)
}

// DefaultLogPath returns $XDG_STATE_HOME/nauka/nauka.log, falling back to
// ~/.local/state/nauka/nauka.log.
func DefaultLogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "nauka", "nauka.log")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "nauka", "nauka.log")
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_base_url: scheme must be http or https, got %q", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_base_url: missing host in %q", c.APIBaseURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr must not be empty")
	}
	return nil
}
