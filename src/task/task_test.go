package task

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestIntervalApplyMinutesHoursDaysWeeks(t *testing.T) {
	start := date(2021, time.January, 1, 0, 0)

	tests := []struct {
		name     string
		interval Interval
		want     time.Time
	}{
		{"10 minutes", NewMinutes(10), start.Add(10 * time.Minute)},
		{"3 hours", NewHours(3), start.Add(3 * time.Hour)},
		{"2 days", NewDays(2), start.AddDate(0, 0, 2)},
		{"1 week", NewWeeks(1), start.AddDate(0, 0, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.interval.Apply(start)
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSetsDayOfMonthIntentOnlyForMonths(t *testing.T) {
	when := date(2021, time.January, 31, 9, 0)

	monthly := New("cmd", when, NewMonths(1), 0, 0)
	if monthly.DayOfMonthIntent != 31 {
		t.Errorf("DayOfMonthIntent = %d, want 31", monthly.DayOfMonthIntent)
	}

	daily := New("cmd", when, NewDays(1), 0, 0)
	if daily.DayOfMonthIntent != 0 {
		t.Errorf("DayOfMonthIntent = %d, want 0 for a non-monthly task", daily.DayOfMonthIntent)
	}
}

func TestIsRetryAndHasAttemptsLeft(t *testing.T) {
	fresh := New("cmd", date(2021, time.January, 1, 0, 0), NewMinutes(5), 2, time.Minute)
	if fresh.IsRetry() {
		t.Error("a freshly created task must not be a retry")
	}
	if !fresh.HasAttemptsLeft() {
		t.Error("a fresh task with MaxRetries=2 must have attempts left")
	}

	retry1 := NewRetry(fresh)
	if !retry1.IsRetry() {
		t.Error("NewRetry must produce a retry instance")
	}
	if !retry1.HasAttemptsLeft() {
		t.Error("attempt 1 of 2 must still have attempts left")
	}

	retry2 := NewRetry(retry1)
	if retry2.HasAttemptsLeft() {
		t.Error("attempt 2 of a MaxRetries=2 budget must have no attempts left")
	}
}

func TestNewRetryAdvancesTimeByRetryAfter(t *testing.T) {
	parent := New("cmd", date(2021, time.January, 1, 0, 0), NewMinutes(5), 3, 90*time.Second)
	retry := NewRetry(parent)

	want := parent.Time.Add(90 * time.Second)
	if !retry.Time.Equal(want) {
		t.Errorf("retry.Time = %v, want %v", retry.Time, want)
	}
	if retry.AttemptsCount != 1 {
		t.Errorf("retry.AttemptsCount = %d, want 1", retry.AttemptsCount)
	}
	if retry.ID == parent.ID {
		t.Error("retry must carry a distinct ID from its parent")
	}
}

func TestRescheduleResetsAttemptsCount(t *testing.T) {
	parent := New("cmd", date(2021, time.January, 1, 0, 0), NewMinutes(5), 3, time.Minute)
	retry := NewRetry(parent)
	next := Reschedule(retry)

	if next.AttemptsCount != 0 {
		t.Errorf("Reschedule must reset AttemptsCount, got %d", next.AttemptsCount)
	}
}

// TestRescheduleMonthsUsesDayOfMonthIntent exercises P-MD31: a task intended
// to run on the 31st must keep targeting the 31st every month, even after a
// month without a 31st clamps the observed Time down to a shorter day.
func TestRescheduleMonthsUsesDayOfMonthIntent(t *testing.T) {
	oct31 := New("cmd", date(2020, time.October, 31, 9, 0), NewMonths(1), 0, 0)

	nov := Reschedule(oct31)
	wantNov := date(2020, time.November, 30, 9, 0)
	if !nov.Time.Equal(wantNov) {
		t.Errorf("November reschedule = %v, want %v (clamped)", nov.Time, wantNov)
	}
	if nov.DayOfMonthIntent != 31 {
		t.Errorf("DayOfMonthIntent must survive the clamp, got %d", nov.DayOfMonthIntent)
	}

	dec := Reschedule(nov)
	wantDec := date(2020, time.December, 31, 9, 0)
	if !dec.Time.Equal(wantDec) {
		t.Errorf("December reschedule = %v, want %v (un-clamped, from intent)", dec.Time, wantDec)
	}
}

func TestRescheduleMonthsThreeMonthStep(t *testing.T) {
	dec30 := New("cmd", date(2021, time.December, 30, 12, 0), NewMonths(3), 0, 0)
	next := Reschedule(dec30)

	want := date(2022, time.March, 30, 12, 0)
	if !next.Time.Equal(want) {
		t.Errorf("3-month reschedule = %v, want %v", next.Time, want)
	}
}

// TestRescheduleTwoHoursThirtyMinutes exercises the "hourly transit"
// scenario: a task due at 01:00 with a 2h30m period lands on 03:30.
func TestRescheduleTwoHoursThirtyMinutes(t *testing.T) {
	start := New("cmd", date(2021, time.February, 22, 1, 0), NewMinutes(150), 0, 0)
	next := Reschedule(start)

	want := date(2021, time.February, 22, 3, 30)
	if !next.Time.Equal(want) {
		t.Errorf("reschedule = %v, want %v", next.Time, want)
	}
}

func TestIntervalKindString(t *testing.T) {
	tests := []struct {
		kind IntervalKind
		want string
	}{
		{Minutes, "minutes"},
		{Hours, "hours"},
		{Days, "days"},
		{Weeks, "weeks"},
		{Months, "months"},
		{IntervalKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
