// Package logging configures process-global structured logging: an
// slog.Logger writing to a rotating file via lumberjack, falling back to
// stderr when no log directory is available. This mirrors the
// slog+lumberjack pairing used for daemon logging elsewhere in the
// organization's Go services.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/apimgr/chronos/src/capability"
)

// Config controls where logs go and at what level.
type Config struct {
	Level    string // debug|info|warn|error, default info
	Dir      string // log directory; empty means stderr only
	MaxSizeMB int   // lumberjack MaxSize, default 10
	MaxBackups int  // lumberjack MaxBackups, default 5
	MaxAgeDays int  // lumberjack MaxAge, default 28
}

var (
	once   sync.Once
	logger *slog.Logger
)

// Init configures the process-global logger. Safe to call once; subsequent
// calls are no-ops, matching the sync.Once-guarded init pattern used
// elsewhere for this daemon's ambient setup.
func Init(cfg Config) {
	once.Do(func() {
		logger = build(cfg)
	})
}

func build(cfg Config) *slog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err == nil {
			out = &lumberjack.Logger{
				Filename:   filepath.Join(cfg.Dir, "chronos.log"),
				MaxSize:    orDefault(cfg.MaxSizeMB, 10),
				MaxBackups: orDefault(cfg.MaxBackups, 5),
				MaxAge:     orDefault(cfg.MaxAgeDays, 28),
				Compress:   true,
			}
		}
	}

	level := parseLevel(cfg.Level)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the process-global logger, falling back to an unconfigured
// stderr logger if Init was never called.
func Get() *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return logger
}

// SlogAdapter adapts an *slog.Logger to capability.Logger.
type SlogAdapter struct {
	L *slog.Logger
}

func (a SlogAdapter) Debug(msg string, args ...any) { a.L.Debug(msg, args...) }
func (a SlogAdapter) Info(msg string, args ...any)  { a.L.Info(msg, args...) }
func (a SlogAdapter) Warn(msg string, args ...any)  { a.L.Warn(msg, args...) }
func (a SlogAdapter) Error(msg string, args ...any) { a.L.Error(msg, args...) }

var _ capability.Logger = SlogAdapter{}
