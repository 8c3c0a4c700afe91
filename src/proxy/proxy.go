// Package proxy implements the logging-decorator pattern described in
// SPEC_FULL.md §9 ("Logging proxies"): one production implementation plus
// one logging wrapper per capability, delegating to the wrapped value and
// emitting a log line at entry and exit of each operation. Core logic never
// imports a logger directly.
package proxy

import (
	"time"

	"github.com/apimgr/chronos/src/capability"
	"github.com/apimgr/chronos/src/dispatcher"
	"github.com/apimgr/chronos/src/parser"
	"github.com/apimgr/chronos/src/task"
)

// SystemCall wraps a capability.SystemCall, logging before and after each
// invocation.
type SystemCall struct {
	Inner  capability.SystemCall
	Logger capability.Logger
}

func (p SystemCall) Call(command string) capability.CallResult {
	p.Logger.Debug("system_call: invoking", "command", command)
	result := p.Inner.Call(command)
	p.Logger.Debug("system_call: completed", "command", command, "success", result.Success)
	return result
}

// Parser wraps a parser.Parser, logging the number of entries parsed or the
// failure reason.
type Parser struct {
	Inner  parser.Parser
	Logger capability.Logger
}

func (p Parser) Parse(content string) ([]parser.TaskEntry, error) {
	p.Logger.Debug("parser: parsing schedule file", "bytes", len(content))
	entries, err := p.Inner.Parse(content)
	if err != nil {
		p.Logger.Warn("parser: parse failed", "error", err)
		return nil, err
	}
	p.Logger.Info("parser: parsed schedule file", "entries", len(entries))
	return entries, nil
}

// Queue wraps a dispatcher.Queue (the schedule's dispatcher-facing surface),
// logging withdraw, reschedule, retry and drain. Add and TimeToNextTask
// delegate without logging.
type Queue struct {
	Inner  dispatcher.Queue
	Logger capability.Logger
}

func (p Queue) TimeToNextTask(now time.Time) (time.Duration, error) {
	return p.Inner.TimeToNextTask(now)
}

func (p Queue) WithdrawNextTask() (*task.Task, error) {
	t, err := p.Inner.WithdrawNextTask()
	if err == nil {
		p.Logger.Debug("schedule: withdrew task", "id", t.ID, "command", t.Command)
	}
	return t, err
}

func (p Queue) Reschedule(t *task.Task) {
	p.Logger.Debug("schedule: rescheduling", "id", t.ID)
	p.Inner.Reschedule(t)
}

func (p Queue) Retry(t *task.Task) {
	p.Logger.Debug("schedule: enqueuing retry", "id", t.ID, "attempt", t.AttemptsCount+1)
	p.Inner.Retry(t)
}

func (p Queue) Add(t *task.Task) {
	p.Inner.Add(t)
}

func (p Queue) DrainRetries() []*task.Task {
	retries := p.Inner.DrainRetries()
	p.Logger.Info("schedule: drained retries for reload", "count", len(retries))
	return retries
}

// Dispatcher wraps a *dispatcher.Dispatcher, logging each dispatch and
// reload.
type Dispatcher struct {
	Inner  *dispatcher.Dispatcher
	Logger capability.Logger
}

func (p Dispatcher) TimeToNextTask(now time.Time) (time.Duration, error) {
	return p.Inner.TimeToNextTask(now)
}

func (p Dispatcher) HandleNextTask() (capability.CallResult, error) {
	p.Logger.Debug("dispatcher: handling next task")
	result, err := p.Inner.HandleNextTask()
	if err != nil {
		p.Logger.Warn("dispatcher: handle_next_task failed", "error", err)
		return result, err
	}
	p.Logger.Info("dispatcher: task completed", "success", result.Success)
	return result, nil
}

func (p Dispatcher) Reload(next dispatcher.Queue) {
	p.Logger.Info("dispatcher: reloading schedule")
	p.Inner.Reload(next)
}
