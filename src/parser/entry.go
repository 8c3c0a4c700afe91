package parser

// atKind identifies which form of "at" clause a TaskEntry carries.
type atKind int

const (
	atNone atKind = iota
	atMinuteOnly
	atHourMinute
	atWeekdayTime
	atDayOfMonthTime
)

// freqUnit is the frequency unit named in an entry's "every" clause.
type freqUnit int

const (
	unitMinutes freqUnit = iota
	unitHours
	unitDays
	unitWeeks
	unitMonths
)

// TaskEntry is the parser's output: one statement from the schedule file,
// with its clauses resolved to typed fields but not yet converted into an
// absolute time (that is the Converter's job, since it requires a Clock
// reading).
type TaskEntry struct {
	Command string

	Unit      freqUnit
	FreqCount int

	At atKind

	AtMinute int // atMinuteOnly, atHourMinute, atWeekdayTime, atDayOfMonthTime
	AtHour   int // atHourMinute, atWeekdayTime, atDayOfMonthTime
	Weekday  int // atWeekdayTime: 0=Monday .. 6=Sunday
	DayOfMonth int // atDayOfMonthTime

	RetryAfterSeconds int64
	MaxRetries        int
}

var weekdayNames = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

var pluralUnits = map[string]freqUnit{
	"minutes": unitMinutes,
	"hours":   unitHours,
	"days":    unitDays,
	"weeks":   unitWeeks,
	"months":  unitMonths,
}

var singularUnits = map[string]freqUnit{
	"minute": unitMinutes,
	"hour":   unitHours,
	"day":    unitDays,
	"week":   unitWeeks,
	"month":  unitMonths,
}

var retryUnitSeconds = map[string]int64{
	"second":  1,
	"seconds": 1,
	"minute":  60,
	"minutes": 60,
	"hour":    3600,
	"hours":   3600,
	"day":     86400,
	"days":    86400,
}
