// Package logging builds the application's zap logger.
//
// The TUI owns the terminal, so logs go to a size-rotated JSON file.
// Commands that do not draw a UI may also tee a console copy.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/config"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/store"
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New creates a logger writing JSON lines to cfg.File with rotation.
// When console is non-nil a human-readable copy is written there too.
func New(cfg config.LogConfig, console io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if err := store.EnsureDir(cfg.File); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})

	var consoleSink zapcore.WriteSyncer
	if console != nil {
		consoleSink = zapcore.AddSync(console)
	}
	return build(file, consoleSink, level), nil
}

// build assembles the logger from a JSON sink and an optional console sink.
func build(jsonSink, consoleSink zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	enc := encoderConfig()
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), jsonSink, level)
	if consoleSink != nil {
		core = zapcore.NewTee(
			core,
			zapcore.NewCore(zapcore.NewConsoleEncoder(enc), consoleSink, level),
		)
	}
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}
