// Package coordinator drives a Dispatcher in a dedicated worker goroutine,
// sleeping on a Timer between due instants.
package coordinator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/apimgr/chronos/src/capability"
	"github.com/apimgr/chronos/src/dispatcher"
)

// dispatching is the minimal surface a Coordinator needs from a Dispatcher.
type dispatching interface {
	TimeToNextTask(now time.Time) (time.Duration, error)
	HandleNextTask() (capability.CallResult, error)
}

var _ dispatching = (*dispatcher.Dispatcher)(nil)

// Coordinator runs the Running/Terminating/Stopped state machine of §4.4.
// Termination is cooperative: a boolean flag checked after Wait returns,
// before HandleNextTask is invoked. One revision of the source fires
// unconditionally after Wait returns; this implementation always rechecks
// the flag first, so a pending task is never executed after terminate().
type Coordinator struct {
	dispatcher dispatching
	clock      capability.Clock
	timer      capability.Timer
	logger     capability.Logger

	terminated atomic.Bool
	done       chan struct{}
	once       sync.Once
}

// New returns a Coordinator over d, using clock for "now" and timer for the
// interruptible sleep between due instants.
func New(d dispatching, clock capability.Clock, timer capability.Timer, logger capability.Logger) *Coordinator {
	return &Coordinator{
		dispatcher: d,
		clock:      clock,
		timer:      timer,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run starts the worker loop and blocks until Terminate is called. Callers
// typically invoke Run in its own goroutine.
func (c *Coordinator) Run() {
	defer close(c.done)
	for {
		if c.terminated.Load() {
			return
		}

		d, err := c.dispatcher.TimeToNextTask(c.clock.Now())
		if err != nil {
			// empty schedule: nothing to wait for: poll at a fixed interval
			// rather than busy-looping.
			c.timer.Wait(time.Minute)
			continue
		}

		c.timer.Wait(d)

		if c.terminated.Load() {
			return
		}

		if _, err := c.dispatcher.HandleNextTask(); err != nil && c.logger != nil {
			c.logger.Warn("handle_next_task failed", "error", err)
		}
	}
}

// Terminate sets the terminated flag and interrupts any current Wait. It
// does not block; callers that need to know the worker has fully exited
// should receive from Done() or call Join.
func (c *Coordinator) Terminate() {
	c.once.Do(func() {
		c.terminated.Store(true)
		c.timer.Interrupt()
	})
}

// Done returns a channel closed once the worker goroutine has returned from
// Run.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Join blocks until the worker goroutine has returned from Run.
func (c *Coordinator) Join() {
	<-c.done
}
