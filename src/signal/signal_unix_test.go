//go:build !windows

package signal

import (
	"log/slog"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

func TestSetupInvokesReloadNowOnSIGHUP(t *testing.T) {
	var reloaded atomic.Bool
	Setup(ShutdownConfig{
		Stop:      func() {},
		ReloadNow: func() { reloaded.Store(true) },
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("Kill(SIGHUP): %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if reloaded.Load() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("ReloadNow was not invoked after SIGHUP")
}

func TestSetupDefaultsNilLoggerToSlogDefault(t *testing.T) {
	// Must not panic when Logger is left unset.
	Setup(ShutdownConfig{Stop: func() {}, ReloadNow: func() {}})
}
