package parser

import (
	"time"

	"github.com/apimgr/chronos/src/capability"
	"github.com/apimgr/chronos/src/task"
)

// Converter maps TaskEntry values to Task values, resolving the first
// execution time against a Clock reading (§4.1's conversion table).
type Converter struct {
	Clock capability.Clock
}

// NewConverter returns a Converter using clock for "closest future instant"
// resolution.
func NewConverter(clock capability.Clock) Converter {
	return Converter{Clock: clock}
}

// Convert maps one TaskEntry to one Task.
func (c Converter) Convert(e TaskEntry) *task.Task {
	now := c.Clock.Now()
	when := closestFutureTime(e, now)
	interval := intervalOf(e)
	retryAfter := time.Duration(e.RetryAfterSeconds) * time.Second

	t := task.New(e.Command, when, interval, e.MaxRetries, retryAfter)

	// task.New derives DayOfMonthIntent from when.Day(), which is already
	// clamped if the first occurrence fell in a short month. Override with
	// the entry's own day-of-month so the original intent survives even
	// when the very first occurrence needed clamping.
	if e.Unit == unitMonths {
		t.DayOfMonthIntent = e.DayOfMonth
	}
	return t
}

// ConvertAll converts every entry in order.
func (c Converter) ConvertAll(entries []TaskEntry) []*task.Task {
	tasks := make([]*task.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, c.Convert(e))
	}
	return tasks
}

func intervalOf(e TaskEntry) task.Interval {
	switch e.Unit {
	case unitMinutes:
		return task.NewMinutes(e.FreqCount)
	case unitHours:
		return task.NewHours(e.FreqCount)
	case unitDays:
		return task.NewDays(e.FreqCount)
	case unitWeeks:
		return task.NewWeeks(e.FreqCount)
	case unitMonths:
		return task.NewMonths(e.FreqCount)
	default:
		return task.NewMinutes(e.FreqCount)
	}
}

// closestFutureTime implements the conversion table of §4.1: the closest
// future instant matching the combined (frequency-unit, at-clause)
// specification, evaluated against now.
func closestFutureTime(e TaskEntry, now time.Time) time.Time {
	switch e.Unit {
	case unitMinutes:
		return now.Truncate(time.Minute).Add(time.Minute)

	case unitHours:
		// at-minute m: this hour at minute m if still future, else +1h.
		candidate := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), e.AtMinute, 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.Add(time.Hour)
		}
		return candidate

	case unitDays:
		return closestDailyTime(now, e.AtHour, e.AtMinute)

	case unitWeeks:
		// next occurrence of the weekday at h:m; same day counts as future
		// only when strictly after now, otherwise +7 days.
		candidate := closestDailyTimeOnDate(now, e.AtHour, e.AtMinute)
		delta := (e.Weekday - weekdayIndex(now) + 7) % 7
		candidate = candidate.AddDate(0, 0, delta)
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 7)
		}
		return candidate

	case unitMonths:
		return closestMonthlyTime(now, e.DayOfMonth, e.AtHour, e.AtMinute)

	default:
		return now
	}
}

// weekdayIndex maps time.Weekday (Sunday=0) to the spec's Monday=0 scheme.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// resolveHour24 builds the h:m instant on day's date, resolving an hour=24
// "at" clause to hour 0 of the following day, per the canonicalization
// documented in SPEC_FULL.md §9.
func resolveHour24(day time.Time, hour, minute int) time.Time {
	if hour == 24 {
		day = day.AddDate(0, 0, 1)
		hour = 0
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func closestDailyTime(now time.Time, hour, minute int) time.Time {
	candidate := resolveHour24(now, hour, minute)
	if !candidate.After(now) {
		candidate = resolveHour24(now.AddDate(0, 0, 1), hour, minute)
	}
	return candidate
}

// closestDailyTimeOnDate resolves the h:m instant on now's own date, without
// advancing a day when it has already passed — used by the weekly case,
// which applies its own day-of-week delta afterwards.
func closestDailyTimeOnDate(now time.Time, hour, minute int) time.Time {
	return resolveHour24(now, hour, minute)
}

func closestMonthlyTime(now time.Time, day, hour, minute int) time.Time {
	candidate := clampedMonthDate(now.Year(), now.Month(), day, hour, minute, now.Location())
	if !candidate.After(now) {
		year, month := now.Year(), now.Month()+1
		if month > 12 {
			month = 1
			year++
		}
		candidate = clampedMonthDate(year, month, day, hour, minute, now.Location())
	}
	return candidate
}

func clampedMonthDate(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	firstOfMonth := time.Date(year, month, 1, hour, minute, 0, 0, loc)
	lastDay := firstOfMonth.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}
