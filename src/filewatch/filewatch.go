// Package filewatch implements content-hash polling of the schedule source
// file: FileGuard detects a change, FileLock turns repeated polling into a
// single interruptible wait (§4.5).
package filewatch

import (
	"crypto/sha256"
	"os"
	"sync"
	"time"

	"github.com/apimgr/chronos/src/capability"
)

// FileGuard holds a file path and the hash of its most recently observed
// content. The hash is SHA-256 over the raw bytes — a stronger function than
// the source's std::hash<std::string>, but serving the same role: detect any
// content edit, not merely a size or mtime change.
type FileGuard struct {
	path string
	hash [sha256.Size]byte
}

// NewFileGuard reads path and returns a FileGuard primed with its current
// hash.
func NewFileGuard(path string) (*FileGuard, error) {
	hash, err := hashFile(path)
	if err != nil {
		return nil, err
	}
	return &FileGuard{path: path, hash: hash}, nil
}

// CheckForChange recomputes the file's hash, compares it to the stored
// value, updates the stored value, and reports whether they differed. A
// file that has gone missing counts as unchanged (the caller is expected to
// treat FileNotFound as a separate, logged condition at reparse time).
func (g *FileGuard) CheckForChange() bool {
	hash, err := hashFile(g.path)
	if err != nil {
		return false
	}
	changed := hash != g.hash
	g.hash = hash
	return changed
}

func hashFile(path string) ([sha256.Size]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(content), nil
}

// FileLock wraps a FileGuard and a Timer, turning repeated CheckForChange
// polling into a single blocking call.
type FileLock struct {
	guard *FileGuard
	timer capability.Timer

	mu       sync.Mutex
	released bool
}

// NewFileLock returns a FileLock polling guard's file, sleeping on timer
// between polls.
func NewFileLock(guard *FileGuard, timer capability.Timer) *FileLock {
	return &FileLock{guard: guard, timer: timer}
}

// WaitUntilChange blocks until the watched file's content changes or
// Release is called, whichever happens first, polling at most once per
// interval. It reports true if it returned because guard detected an
// actual content change, false if it returned because of a plain
// Release with no detected change — letting a caller skip reparsing
// work on a no-op wake.
func (l *FileLock) WaitUntilChange(interval time.Duration) bool {
	l.mu.Lock()
	l.released = false
	l.mu.Unlock()

	for {
		if l.guard.CheckForChange() {
			return true
		}
		if l.isReleased() {
			return false
		}
		l.timer.Wait(interval)
	}
}

func (l *FileLock) isReleased() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released
}

// Release unblocks the current WaitUntilChange call without requiring that
// the file actually changed. A WaitUntilChange call that starts after
// Release clears the released flag and is not unblocked by it.
func (l *FileLock) Release() {
	l.mu.Lock()
	l.released = true
	l.mu.Unlock()
	l.timer.Interrupt()
}
