package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero indicates a zero divisor, including 0 raised to a negative power.
	ErrDivisionByZero = errors.New("expr: division by zero")

	// ErrDomain indicates a function argument outside its real domain.
	ErrDomain = errors.New("expr: argument outside function domain")
)

// SyntaxError reports a malformed expression. Pos is a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: %s at position %d", e.Msg, e.Pos)
}

func domainError(fn string, args ...float64) error {
	return fmt.Errorf("%w: %s%v", ErrDomain, fn, args)
}
