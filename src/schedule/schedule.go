// Package schedule implements the time-wheel: a priority queue of tasks
// ordered by next-due time, safe for concurrent use by one writer (the
// dispatcher and the reload path) and many readers.
package schedule

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	"github.com/apimgr/chronos/src/task"
)

// ErrEmpty is returned by operations that require a non-empty schedule.
var ErrEmpty = errors.New("schedule: empty")

// taskHeap implements heap.Interface over *task.Task ordered by Time
// ascending, so the head of the queue is always the earliest-due task.
type taskHeap []*task.Task

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].Time.Before(h[j].Time) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)         { *h = append(*h, x.(*task.Task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Schedule is the ordered collection of pending tasks. The container is
// protected by a reader/writer lock: time_to_next_task and is_empty take the
// read lock, every mutating operation takes the write lock.
type Schedule struct {
	mu sync.RWMutex
	h  taskHeap
}

// New returns an empty schedule.
func New() *Schedule {
	s := &Schedule{}
	heap.Init(&s.h)
	return s
}

// IsEmpty reports whether the schedule holds no tasks.
func (s *Schedule) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.h) == 0
}

// Len returns the number of pending tasks.
func (s *Schedule) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.h)
}

// Add inserts t, preserving the head-ordering invariant.
func (s *Schedule) Add(t *task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.h, t)
}

// TimeToNextTask returns head.Time - now. Negative means overdue.
// Precondition: schedule is not empty.
func (s *Schedule) TimeToNextTask(now time.Time) (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.h) == 0 {
		return 0, ErrEmpty
	}
	return s.h[0].Time.Sub(now), nil
}

// WithdrawNextTask removes and returns the head of the schedule.
// Precondition: schedule is not empty.
func (s *Schedule) WithdrawNextTask() (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.h) == 0 {
		return nil, ErrEmpty
	}
	return heap.Pop(&s.h).(*task.Task), nil
}

// Reschedule computes a fresh time for t by applying its interval (tagged
// dispatch: duration addition for Minutes/Hours, calendar addition for
// Days/Weeks/Months) and inserts the resulting fresh instance.
func (s *Schedule) Reschedule(t *task.Task) {
	next := task.Reschedule(t)
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.h, next)
}

// Retry inserts the retry-derived instance of t (§3) without mutating t.
func (s *Schedule) Retry(t *task.Task) {
	retry := task.NewRetry(t)
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.h, retry)
}

// DrainRetries withdraws every task currently in the schedule and returns
// only those that are retries (is_retry). Fresh instances are discarded.
// Used by Dispatcher.Reload to migrate in-flight retries into a new
// schedule; must examine every element including the last one withdrawn.
func (s *Schedule) DrainRetries() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var retries []*task.Task
	for len(s.h) > 0 {
		t := heap.Pop(&s.h).(*task.Task)
		if t.IsRetry() {
			retries = append(retries, t)
		}
	}
	return retries
}
