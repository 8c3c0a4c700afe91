package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withGOOS(t *testing.T, value string) {
	t.Helper()
	orig := goos
	goos = value
	t.Cleanup(func() { goos = orig })
}

func TestGetLinuxPrivilegedUsesSystemDirs(t *testing.T) {
	withGOOS(t, "linux")
	p := Get("apimgr", "chronos", true)
	if p.LogDir != filepath.Join("/var/log", "apimgr", "chronos") {
		t.Errorf("LogDir = %q, want /var/log/apimgr/chronos", p.LogDir)
	}
	if p.PIDFile != filepath.Join("/var/run", "apimgr", "chronos.pid") {
		t.Errorf("PIDFile = %q, want /var/run/apimgr/chronos.pid", p.PIDFile)
	}
}

func TestGetLinuxUnprivilegedUsesHomeDirs(t *testing.T) {
	withGOOS(t, "linux")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}
	p := Get("apimgr", "chronos", false)
	if !strings.HasPrefix(p.LogDir, home) {
		t.Errorf("LogDir = %q, want it under %q", p.LogDir, home)
	}
	if !strings.HasPrefix(p.PIDFile, home) {
		t.Errorf("PIDFile = %q, want it under %q", p.PIDFile, home)
	}
}

func TestGetDarwinPrivilegedUsesLibraryLogs(t *testing.T) {
	withGOOS(t, "darwin")
	p := Get("apimgr", "chronos", true)
	if p.LogDir != filepath.Join("/Library/Logs", "apimgr", "chronos") {
		t.Errorf("LogDir = %q, want /Library/Logs/apimgr/chronos", p.LogDir)
	}
}

func TestGetBSDMatchesLinuxLayout(t *testing.T) {
	withGOOS(t, "freebsd")
	bsd := Get("apimgr", "chronos", true)
	withGOOS(t, "linux")
	linux := Get("apimgr", "chronos", true)
	if bsd.LogDir != linux.LogDir || bsd.PIDFile != linux.PIDFile {
		t.Errorf("BSD paths = %+v, want same layout as Linux %+v", bsd, linux)
	}
}

func TestGetWindowsPrivilegedUsesProgramData(t *testing.T) {
	withGOOS(t, "windows")
	t.Setenv("ProgramData", `C:\ProgramData`)
	p := Get("apimgr", "chronos", true)
	if !strings.HasPrefix(p.LogDir, `C:\ProgramData`) {
		t.Errorf("LogDir = %q, want it under ProgramData", p.LogDir)
	}
}

func TestGetWindowsUnprivilegedUsesLocalAppData(t *testing.T) {
	withGOOS(t, "windows")
	t.Setenv("LocalAppData", `C:\Users\x\AppData\Local`)
	p := Get("apimgr", "chronos", false)
	if !strings.HasPrefix(p.LogDir, `C:\Users\x\AppData\Local`) {
		t.Errorf("LogDir = %q, want it under LocalAppData", p.LogDir)
	}
}

func TestGetUnknownGOOSFallsBackToLinuxLayout(t *testing.T) {
	withGOOS(t, "plan9")
	fallback := Get("apimgr", "chronos", true)
	withGOOS(t, "linux")
	linux := Get("apimgr", "chronos", true)
	if fallback.LogDir != linux.LogDir {
		t.Errorf("unknown GOOS LogDir = %q, want Linux fallback %q", fallback.LogDir, linux.LogDir)
	}
}

func TestIsPrivilegedOnWindowsChecksUserProfile(t *testing.T) {
	withGOOS(t, "windows")
	t.Setenv("USERPROFILE", "")
	if !IsPrivileged() {
		t.Error("IsPrivileged() = false, want true when USERPROFILE is empty")
	}
	t.Setenv("USERPROFILE", `C:\Users\x`)
	if IsPrivileged() {
		t.Error("IsPrivileged() = true, want false when USERPROFILE is set")
	}
}
