// Package supervisor implements the reload loop of §4.6: run one
// Coordinator at a time over the current Dispatcher, block on a FileLock
// until the schedule file changes (or shutdown is requested), terminate the
// Coordinator, reparse, swap the schedule, and repeat.
package supervisor

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/apimgr/chronos/src/capability"
	"github.com/apimgr/chronos/src/coordinator"
	"github.com/apimgr/chronos/src/dispatcher"
	"github.com/apimgr/chronos/src/filewatch"
	"github.com/apimgr/chronos/src/metrics"
	"github.com/apimgr/chronos/src/parser"
	"github.com/apimgr/chronos/src/proxy"
	"github.com/apimgr/chronos/src/schedule"
)

// PollInterval is how often FileLock polls the schedule file for a content
// change, per §4.6.
const PollInterval = 60 * time.Second

// Supervisor owns the source-file path, the current Dispatcher (shared with
// whichever Coordinator it currently runs), and a FileLock on the path.
type Supervisor struct {
	path       string
	dispatcher *dispatcher.Dispatcher
	converter  parser.Converter
	parse      func(content string) ([]parser.TaskEntry, error)

	clock   capability.Clock
	call    capability.SystemCall
	logger  capability.Logger
	metrics *metrics.Metrics

	lock    *filewatch.FileLock
	guard   *filewatch.FileGuard
	stopped atomic.Bool
	done    chan struct{}
}

// New parses path for the initial schedule and returns a ready-to-run
// Supervisor. Returns an error if the file is missing or fails to parse —
// both fatal at startup per §7.
func New(path string, clock capability.Clock, call capability.SystemCall, logger capability.Logger, m *metrics.Metrics) (*Supervisor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	loggedParser := proxy.Parser{Inner: parser.New(), Logger: logger}
	converter := parser.NewConverter(clock)

	entries, err := loggedParser.Parse(string(content))
	if err != nil {
		return nil, err
	}

	sched := schedule.New()
	for _, t := range converter.ConvertAll(entries) {
		sched.Add(t)
	}

	guard, err := filewatch.NewFileGuard(path)
	if err != nil {
		return nil, err
	}

	loggedCall := proxy.SystemCall{Inner: call, Logger: logger}
	loggedQueue := proxy.Queue{Inner: sched, Logger: logger}

	s := &Supervisor{
		path:       path,
		dispatcher: dispatcher.New(loggedQueue, loggedCall, m),
		converter:  converter,
		parse:      loggedParser.Parse,
		clock:      clock,
		call:       call,
		logger:     logger,
		metrics:    m,
		guard:      guard,
		lock:       filewatch.NewFileLock(guard, capability.NewRealTimer()),
		done:       make(chan struct{}),
	}
	return s, nil
}

// Run executes the main loop until Stop is called. Intended to run on its
// own goroutine; callers join via Done or Wait.
func (s *Supervisor) Run() {
	defer close(s.done)

	for {
		loggedDispatcher := proxy.Dispatcher{Inner: s.dispatcher, Logger: s.logger}
		coord := coordinator.New(loggedDispatcher, s.clock, capability.NewRealTimer(), s.logger)
		go coord.Run()

		changed := s.lock.WaitUntilChange(PollInterval)

		coord.Terminate()
		coord.Join()

		if s.stopped.Load() {
			return
		}

		if changed {
			s.reparse()
		} else {
			s.logger.Debug("reload: woken with no content change, skipping reparse")
		}
	}
}

func (s *Supervisor) reparse() {
	content, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn("reload: file not found, keeping current schedule", "path", s.path, "error", err)
		s.metrics.ObserveReload(false)
		return
	}

	entries, err := s.parse(string(content))
	if err != nil {
		s.logger.Warn("reload: syntax error, keeping current schedule", "path", s.path, "error", err)
		s.metrics.ObserveReload(false)
		return
	}

	next := proxy.Queue{Inner: schedule.New(), Logger: s.logger}
	for _, t := range s.converter.ConvertAll(entries) {
		next.Add(t)
	}

	s.dispatcher.Reload(next)
	s.metrics.ObserveReload(true)
	s.logger.Info("reload: schedule swapped", "tasks", len(entries))
}

// RequestReload forces an immediate check of the schedule file instead of
// waiting for the next polling tick, wired to SIGHUP on Unix (§4.8). It
// releases the same FileLock a genuine content change would, waking Run
// early; Run still reuses the FileGuard's hash comparison to decide whether
// the file actually changed, so a SIGHUP against an unchanged file skips the
// reparse entirely instead of paying its cost.
func (s *Supervisor) RequestReload() {
	s.lock.Release()
}

// Stop initiates shutdown: the stopped flag is set and the file lock is
// released so the main loop observes it after waking and exits.
func (s *Supervisor) Stop() {
	s.stopped.Store(true)
	s.lock.Release()
}

// Done returns a channel closed once Run has returned.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until Run has returned.
func (s *Supervisor) Wait() {
	<-s.done
}
