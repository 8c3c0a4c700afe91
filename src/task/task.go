// Package task defines the scheduled unit of work that flows through the
// schedule, dispatcher and coordinator: a command string, its next-due time,
// the interval used to compute the time after it, and the retry budget
// tracked across fresh and retry instances of the same entry.
package task

import (
	"time"

	"github.com/google/uuid"
)

// IntervalKind tags the variant carried by an Interval.
type IntervalKind int

const (
	Minutes IntervalKind = iota
	Hours
	Days
	Weeks
	Months
)

func (k IntervalKind) String() string {
	switch k {
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	default:
		return "unknown"
	}
}

// Interval is a closed sum type over the five frequency units a task can be
// scheduled on. Minutes and Hours are duration-based; Days, Weeks and Months
// are calendar-based. Dispatch is by Kind, never by subtyping.
type Interval struct {
	Kind  IntervalKind
	Count int
}

func NewMinutes(n int) Interval { return Interval{Kind: Minutes, Count: n} }
func NewHours(n int) Interval   { return Interval{Kind: Hours, Count: n} }
func NewDays(n int) Interval    { return Interval{Kind: Days, Count: n} }
func NewWeeks(n int) Interval   { return Interval{Kind: Weeks, Count: n} }
func NewMonths(n int) Interval  { return Interval{Kind: Months, Count: n} }

// Apply advances t by the interval, dispatching on Kind. Minutes/Hours use
// wall-duration addition; Days/Weeks/Months use calendar addition, which
// preserves time-of-day and clamps the day-of-month when the target month is
// shorter than the source day (see Reschedule for the day-of-month intent
// that survives the clamp).
func (iv Interval) Apply(t time.Time) time.Time {
	switch iv.Kind {
	case Minutes:
		return t.Add(time.Duration(iv.Count) * time.Minute)
	case Hours:
		return t.Add(time.Duration(iv.Count) * time.Hour)
	case Days:
		return t.AddDate(0, 0, iv.Count)
	case Weeks:
		return t.AddDate(0, 0, 7*iv.Count)
	case Months:
		totalMonths := int(t.Month()) - 1 + iv.Count
		firstOfMonth := time.Date(t.Year()+totalMonths/12, time.Month(totalMonths%12+1), 1,
			t.Hour(), t.Minute(), t.Second(), 0, t.Location())
		return clampToMonth(firstOfMonth, t.Day())
	default:
		return t
	}
}

// Task is a scheduled unit of work. Fields other than ID, Time, AttemptsCount
// and DayOfMonthIntent are immutable across the task's lifetime, including
// through retry derivation. Every instance, fresh, retry or rescheduled, gets
// its own ID.
type Task struct {
	ID      string
	Command string
	Time    time.Time
	Interval

	AttemptsCount   int
	MaxRetries      int
	RetryAfter      time.Duration

	// DayOfMonthIntent is the day-of-month this task was originally meant to
	// run on, before any clamping to a shorter month. Only meaningful when
	// Interval.Kind == Months. A reschedule always advances from this value,
	// not from the clamped Time.Day(), so a day-31 task clamped to day 30 in
	// November still targets day 31 in December (P-MD31).
	DayOfMonthIntent int
}

// New constructs a fresh task instance (AttemptsCount == 0) with a freshly
// assigned identifier.
func New(command string, when time.Time, interval Interval, maxRetries int, retryAfter time.Duration) *Task {
	t := &Task{
		ID:         uuid.NewString(),
		Command:    command,
		Time:       when,
		Interval:   interval,
		MaxRetries: maxRetries,
		RetryAfter: retryAfter,
	}
	if interval.Kind == Months {
		t.DayOfMonthIntent = when.Day()
	}
	return t
}

// IsRetry reports whether t is a retry-derived instance.
func (t *Task) IsRetry() bool {
	return t.AttemptsCount > 0
}

// HasAttemptsLeft reports whether another retry may still be spawned from t.
func (t *Task) HasAttemptsLeft() bool {
	return t.AttemptsCount < t.MaxRetries
}

// NewRetry derives a retry instance from parent: same Command, Interval,
// MaxRetries and RetryAfter; Time advances by RetryAfter; AttemptsCount is
// parent's plus one. The parent is not mutated.
func NewRetry(parent *Task) *Task {
	return &Task{
		ID:               uuid.NewString(),
		Command:          parent.Command,
		Time:             parent.Time.Add(parent.RetryAfter),
		Interval:         parent.Interval,
		MaxRetries:       parent.MaxRetries,
		RetryAfter:       parent.RetryAfter,
		AttemptsCount:    parent.AttemptsCount + 1,
		DayOfMonthIntent: parent.DayOfMonthIntent,
	}
}

// Reschedule returns a fresh copy of t with Time advanced by one interval
// period and AttemptsCount reset to 0. For Months intervals, the advance is
// computed from DayOfMonthIntent rather than the (possibly clamped) current
// day, so the original day-of-month is re-attempted every period.
func Reschedule(t *Task) *Task {
	next := &Task{
		ID:               uuid.NewString(),
		Command:          t.Command,
		Interval:         t.Interval,
		MaxRetries:       t.MaxRetries,
		RetryAfter:       t.RetryAfter,
		DayOfMonthIntent: t.DayOfMonthIntent,
	}
	if t.Kind == Months {
		// Computed via integer month arithmetic rather than AddDate directly
		// on t.Time: AddDate on an already-clamped day (e.g. day 30 standing
		// in for intended day 31) can itself overflow into the wrong month
		// (Oct 31 + 1 month normalizes past November into December). Anchor
		// on the first of the month instead, then clamp from intent.
		totalMonths := int(t.Time.Month()) - 1 + t.Count
		year := t.Time.Year() + totalMonths/12
		month := time.Month(totalMonths%12 + 1)
		firstOfMonth := time.Date(year, month, 1,
			t.Time.Hour(), t.Time.Minute(), t.Time.Second(), 0, t.Time.Location())
		next.Time = clampToMonth(firstOfMonth, t.DayOfMonthIntent)
	} else {
		next.Time = t.Interval.Apply(t.Time)
	}
	return next
}

// clampToMonth returns the first of firstOfMonth's month advanced to day,
// clamped to the last valid day of that month.
func clampToMonth(firstOfMonth time.Time, day int) time.Time {
	lastDay := firstOfMonth.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfMonth.Year(), firstOfMonth.Month(), day,
		firstOfMonth.Hour(), firstOfMonth.Minute(), firstOfMonth.Second(), 0, firstOfMonth.Location())
}
