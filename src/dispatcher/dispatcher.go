// Package dispatcher implements the control-loop step that consumes the head
// of a schedule, invokes the configured SystemCall, and applies the
// retry/reschedule policy of §4.3.
package dispatcher

import (
	"time"

	"github.com/apimgr/chronos/src/capability"
	"github.com/apimgr/chronos/src/metrics"
	"github.com/apimgr/chronos/src/task"
)

// Queue is the set of schedule operations the dispatcher depends on. The
// production implementation is *schedule.Schedule; tests and the logging
// proxy substitute other implementations of this interface.
type Queue interface {
	TimeToNextTask(now time.Time) (time.Duration, error)
	WithdrawNextTask() (*task.Task, error)
	Reschedule(t *task.Task)
	Retry(t *task.Task)
	Add(t *task.Task)
	DrainRetries() []*task.Task
}

// Dispatcher holds a reference to the current Schedule and a SystemCall
// capability. The Schedule reference may be swapped wholesale by Reload; the
// reload supervisor owns the Dispatcher, never the reverse, so there is no
// cyclic reference to manage.
type Dispatcher struct {
	schedule Queue
	call     capability.SystemCall
	metrics  *metrics.Metrics
}

// New returns a Dispatcher over s, invoking commands via call. m may be nil.
func New(s Queue, call capability.SystemCall, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{schedule: s, call: call, metrics: m}
}

// TimeToNextTask delegates to the current schedule.
func (d *Dispatcher) TimeToNextTask(now time.Time) (time.Duration, error) {
	return d.schedule.TimeToNextTask(now)
}

// HandleNextTask withdraws the head task, invokes it, and applies the
// consequence table of §4.3:
//
//	fresh, success          -> reschedule(fresh)
//	fresh, failure, budget  -> retry(fresh); reschedule(fresh)
//	fresh, failure, no budg -> reschedule(fresh)
//	retry, success          -> drop
//	retry, failure, budget  -> retry(retry)
//	retry, failure, no budg -> drop
func (d *Dispatcher) HandleNextTask() (capability.CallResult, error) {
	head, err := d.schedule.WithdrawNextTask()
	if err != nil {
		return capability.CallResult{}, err
	}

	result := d.call.Call(head.Command)
	d.metrics.ObserveDispatch(result.Success)

	if !result.Success && head.HasAttemptsLeft() {
		d.schedule.Retry(head)
		d.metrics.ObserveRetry()
	}
	if !head.IsRetry() {
		d.schedule.Reschedule(head)
	}

	return result, nil
}

// Reload migrates every outstanding retry task from the current schedule
// into next, then swaps next in as the active schedule. Fresh tasks from the
// old schedule are discarded; their replacements come from the parsed new
// schedule that the caller already inserted into next.
//
// The migration drains the old schedule fully, including its last element —
// a documented defect in one revision of the source terminates its drain
// loop one iteration early and silently drops the final withdrawn task when
// it happens to be a retry (see SPEC_FULL.md §4.3). Schedule.DrainRetries
// loops on length, not on a pre-fetched "has more" flag, so it has no such
// off-by-one.
func (d *Dispatcher) Reload(next Queue) {
	for _, retry := range d.schedule.DrainRetries() {
		next.Add(retry)
	}
	d.schedule = next
}
