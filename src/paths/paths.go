// Package paths resolves the two filesystem locations this daemon needs
// outside the schedule file itself: the log directory and the PID file,
// branching by OS and by privilege level the same way the organization's
// other Go daemons resolve their runtime directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the resolved runtime locations for one process.
type Paths struct {
	LogDir  string
	PIDFile string
}

// goos is a var rather than a direct runtime.GOOS reference so tests can
// override it.
var goos = runtime.GOOS

// Get returns OS- and privilege-appropriate paths for a project identified
// by org/name.
func Get(org, name string, privileged bool) *Paths {
	switch goos {
	case "linux":
		return getLinuxPaths(org, name, privileged)
	case "darwin":
		return getDarwinPaths(org, name, privileged)
	case "freebsd", "openbsd", "netbsd":
		return getBSDPaths(org, name, privileged)
	case "windows":
		return getWindowsPaths(org, name, privileged)
	default:
		return getLinuxPaths(org, name, privileged)
	}
}

func getLinuxPaths(org, name string, privileged bool) *Paths {
	if privileged {
		return &Paths{
			LogDir:  filepath.Join("/var/log", org, name),
			PIDFile: filepath.Join("/var/run", org, name+".pid"),
		}
	}
	homeDir, _ := os.UserHomeDir()
	return &Paths{
		LogDir:  filepath.Join(homeDir, ".local/log", org, name),
		PIDFile: filepath.Join(homeDir, ".local/share", org, name+".pid"),
	}
}

func getDarwinPaths(org, name string, privileged bool) *Paths {
	if privileged {
		return &Paths{
			LogDir:  filepath.Join("/Library/Logs", org, name),
			PIDFile: filepath.Join("/var/run", org, name+".pid"),
		}
	}
	homeDir, _ := os.UserHomeDir()
	return &Paths{
		LogDir:  filepath.Join(homeDir, "Library/Logs", org, name),
		PIDFile: filepath.Join(homeDir, "Library/Application Support", org, name+".pid"),
	}
}

func getBSDPaths(org, name string, privileged bool) *Paths {
	if privileged {
		return &Paths{
			LogDir:  filepath.Join("/var/log", org, name),
			PIDFile: filepath.Join("/var/run", org, name+".pid"),
		}
	}
	homeDir, _ := os.UserHomeDir()
	return &Paths{
		LogDir:  filepath.Join(homeDir, ".local/log", org, name),
		PIDFile: filepath.Join(homeDir, ".local/share", org, name+".pid"),
	}
}

func getWindowsPaths(org, name string, privileged bool) *Paths {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = "C:\\ProgramData"
	}
	if privileged {
		base := filepath.Join(programData, org, name)
		return &Paths{
			LogDir:  filepath.Join(base, "logs"),
			PIDFile: filepath.Join(base, name+".pid"),
		}
	}
	localAppData := os.Getenv("LocalAppData")
	if localAppData == "" {
		homeDir, _ := os.UserHomeDir()
		localAppData = filepath.Join(homeDir, "AppData", "Local")
	}
	base := filepath.Join(localAppData, org, name)
	return &Paths{
		LogDir:  filepath.Join(base, "logs"),
		PIDFile: filepath.Join(base, name+".pid"),
	}
}

// IsPrivileged reports whether the process runs with elevated privileges.
func IsPrivileged() bool {
	if goos == "windows" {
		return os.Getenv("USERPROFILE") == ""
	}
	return os.Getuid() == 0
}
