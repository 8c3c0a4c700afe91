//go:build !windows

package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// setupSignals wires SIGINT/SIGTERM to graceful shutdown and SIGHUP to an
// immediate reload attempt (Unix).
func setupSignals(cfg ShutdownConfig) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigChan {
			switch sig {
			case syscall.SIGHUP:
				cfg.Logger.Info("received SIGHUP, forcing reload check")
				if cfg.ReloadNow != nil {
					cfg.ReloadNow()
				}
			default:
				cfg.Logger.Info("received signal, shutting down", "signal", sig.String())
				if cfg.Stop != nil {
					cfg.Stop()
				}
				return
			}
		}
	}()
}
