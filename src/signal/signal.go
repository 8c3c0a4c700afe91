// Package signal provides cross-platform signal handling for the
// supervisor's graceful shutdown and on-demand reload, split by build tag
// the same way the organization's other Go daemons separate Unix and
// Windows signal sets.
package signal

import (
	"log/slog"
	"os"
)

// ShutdownConfig wires OS signals to supervisor behavior.
type ShutdownConfig struct {
	// Stop is called on SIGINT/SIGTERM (and os.Interrupt on Windows) to
	// begin graceful shutdown.
	Stop func()
	// ReloadNow is called on SIGHUP (Unix only) to force an immediate
	// reparse attempt instead of waiting for the next polling tick.
	ReloadNow func()
	PIDFile   string
	Logger    *slog.Logger
}

// Setup installs the platform-appropriate signal handlers and returns
// immediately; handling happens on a background goroutine.
func Setup(cfg ShutdownConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	setupSignals(cfg)
}

// RemovePIDFile deletes path, ignoring a missing file. Called by the caller
// once the supervisor has fully stopped.
func RemovePIDFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
