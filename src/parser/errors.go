package parser

import "fmt"

// SyntaxError is a grammar failure carrying the offending token's position,
// per the error taxonomy's SyntaxError: fatal at startup, logged-and-ignored
// at reload.
type SyntaxError struct {
	Line   int
	Column int
	Token  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d near %q: %s", e.Line, e.Column, e.Token, e.Reason)
}
