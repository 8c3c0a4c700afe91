// Package parser implements the schedule-file grammar (§4.1): a single-pass,
// case-insensitive, semicolon-terminated statement grammar, plus the
// converter that resolves each parsed entry to a concrete task with a fully
// resolved first-execution time.
package parser

import (
	"fmt"
)

// Parser consumes schedule-file content and emits TaskEntry values.
type Parser struct{}

// New returns a Parser.
func New() Parser { return Parser{} }

// Parse parses the full file content and returns every entry in source
// order, or the first SyntaxError encountered.
func (Parser) Parse(content string) ([]TaskEntry, error) {
	p := &parseState{lex: newLexer(content)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var entries []TaskEntry
	for p.cur.kind != tokEOF {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type parseState struct {
	lex *lexer
	cur token
}

func (p *parseState) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parseState) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.cur.line, Column: p.cur.column, Token: p.cur.text,
		Reason: fmt.Sprintf(format, args...)}
}

func (p *parseState) expectWord(word string) error {
	if p.cur.kind != tokWord || p.cur.text != word {
		return p.errorf("expected %q", word)
	}
	return p.advance()
}

func (p *parseState) expectKind(kind tokenKind, what string) (token, error) {
	if p.cur.kind != kind {
		return token{}, p.errorf("expected %s", what)
	}
	tok := p.cur
	return tok, p.advance()
}

func (p *parseState) parseUint() (int, error) {
	tok, err := p.expectKind(tokNumber, "a number")
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range tok.text {
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// parseEntry parses one "run ... ;" statement.
func (p *parseState) parseEntry() (TaskEntry, error) {
	var entry TaskEntry

	if err := p.expectWord("run"); err != nil {
		return entry, err
	}

	cmdTok, err := p.expectKind(tokString, "a quoted command")
	if err != nil {
		return entry, err
	}
	entry.Command = cmdTok.text

	if err := p.expectWord("every"); err != nil {
		return entry, err
	}

	if err := p.parseFreq(&entry); err != nil {
		return entry, err
	}

	if p.cur.kind == tokWord && p.cur.text == "at" {
		if err := p.advance(); err != nil {
			return entry, err
		}
		if err := p.parseAt(&entry); err != nil {
			return entry, err
		}
	}

	entry.MaxRetries = 0
	if p.cur.kind == tokWord && p.cur.text == "retry" {
		if err := p.advance(); err != nil {
			return entry, err
		}
		if err := p.expectWord("after"); err != nil {
			return entry, err
		}
		if err := p.parseRetryBody(&entry); err != nil {
			return entry, err
		}
	}

	if _, err := p.expectKind(tokSemicolon, `";"`); err != nil {
		return entry, err
	}

	return entry, nil
}

func (p *parseState) parseFreq(entry *TaskEntry) error {
	if p.cur.kind == tokNumber {
		n, err := p.parseUint()
		if err != nil {
			return err
		}
		unit, ok := pluralUnits[p.cur.text]
		if p.cur.kind != tokWord || !ok {
			return p.errorf("expected a plural time unit (minutes|hours|days|weeks|months)")
		}
		if err := p.advance(); err != nil {
			return err
		}
		entry.FreqCount = n
		entry.Unit = unit
		return nil
	}

	if p.cur.kind == tokWord {
		if unit, ok := singularUnits[p.cur.text]; ok {
			entry.FreqCount = 1
			entry.Unit = unit
			return p.advance()
		}
	}
	return p.errorf("expected a frequency (e.g. \"10 minutes\" or \"day\")")
}

func (p *parseState) parseColonLike() error {
	if p.cur.kind != tokColon {
		return p.errorf(`expected ":" or "."`)
	}
	return p.advance()
}

func (p *parseState) parseAt(entry *TaskEntry) error {
	switch entry.Unit {
	case unitHours:
		n, err := p.parseUint()
		if err != nil {
			return err
		}
		if n < 0 || n > 59 {
			return p.errorf("minute %d out of range [0,59]", n)
		}
		entry.At = atMinuteOnly
		entry.AtMinute = n
		return nil

	case unitDays:
		entry.At = atHourMinute
		return p.parseHourColonMinute(&entry.AtHour, &entry.AtMinute)

	case unitWeeks:
		wd, ok := weekdayNames[p.cur.text]
		if p.cur.kind != tokWord || !ok {
			return p.errorf("expected a weekday name")
		}
		if err := p.advance(); err != nil {
			return err
		}
		entry.At = atWeekdayTime
		entry.Weekday = wd
		return p.parseHourColonMinute(&entry.AtHour, &entry.AtMinute)

	case unitMonths:
		day, err := p.parseUint()
		if err != nil {
			return err
		}
		if day < 1 || day > 31 {
			return p.errorf("day-of-month %d out of range [1,31]", day)
		}
		entry.At = atDayOfMonthTime
		entry.DayOfMonth = day
		return p.parseHourColonMinute(&entry.AtHour, &entry.AtMinute)

	default:
		return p.errorf("\"at\" clause is not valid for this frequency unit")
	}
}

func (p *parseState) parseHourColonMinute(hour, minute *int) error {
	h, err := p.parseUint()
	if err != nil {
		return err
	}
	if h < 0 || h > 24 {
		return p.errorf("hour %d out of range [0,24]", h)
	}
	if err := p.parseColonLike(); err != nil {
		return err
	}
	m, err := p.parseUint()
	if err != nil {
		return err
	}
	if m < 0 || m > 59 {
		return p.errorf("minute %d out of range [0,59]", m)
	}
	*hour = h
	*minute = m
	return nil
}

func (p *parseState) parseRetryBody(entry *TaskEntry) error {
	var retryCount int
	var unitWord string

	if p.cur.kind == tokNumber {
		n, err := p.parseUint()
		if err != nil {
			return err
		}
		if p.cur.kind != tokWord {
			return p.errorf("expected a time unit after retry count")
		}
		if _, ok := retryUnitSeconds[p.cur.text]; !ok {
			return p.errorf("unknown retry unit %q", p.cur.text)
		}
		retryCount = n
		unitWord = p.cur.text
		if err := p.advance(); err != nil {
			return err
		}
	} else if p.cur.kind == tokWord && (p.cur.text == "a" || p.cur.text == "an") {
		if err := p.advance(); err != nil {
			return err
		}
		if p.cur.kind != tokWord {
			return p.errorf("expected a time unit after \"a\"/\"an\"")
		}
		if _, ok := retryUnitSeconds[p.cur.text]; !ok {
			return p.errorf("unknown retry unit %q", p.cur.text)
		}
		retryCount = 1
		unitWord = p.cur.text
		if err := p.advance(); err != nil {
			return err
		}
	} else {
		return p.errorf("expected a retry duration (e.g. \"5 minutes\" or \"an hour\")")
	}

	entry.RetryAfterSeconds = int64(retryCount) * retryUnitSeconds[unitWord]

	// optional trailing "N times"/"N time" clause, governing max_retries.
	if p.cur.kind == tokNumber {
		n, err := p.parseUint()
		if err != nil {
			return err
		}
		if p.cur.kind != tokWord || (p.cur.text != "time" && p.cur.text != "times") {
			return p.errorf(`expected "time" or "times"`)
		}
		if err := p.advance(); err != nil {
			return err
		}
		entry.MaxRetries = n
		return nil
	}

	// "retry after X" with no explicit times clause defaults to 1.
	entry.MaxRetries = 1
	return nil
}
