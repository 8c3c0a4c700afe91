//go:build windows

package signal

import (
	"os"
	"os/signal"
)

// setupSignals wires Ctrl+C/Ctrl+Break to graceful shutdown (Windows has no
// SIGHUP equivalent, so reload stays polling-only on this platform).
func setupSignals(cfg ShutdownConfig) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		sig := <-sigChan
		cfg.Logger.Info("received signal, shutting down", "signal", sig.String())
		if cfg.Stop != nil {
			cfg.Stop()
		}
	}()
}
