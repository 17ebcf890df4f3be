package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Threshold bounds, inclusive.
const (
	MinThreshold = 0
	MaxThreshold = 99
)

// Exit codes for argument errors.
const (
	ExitMissingArg = 1
	ExitInvalidArg = 2
	ExitOutOfRange = 3
)

// ArgError is a command line error carrying the process exit code.
type ArgError struct {
	Code int
	Msg  string
	Err  error
}

func (e *ArgError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ArgError) Unwrap() error { return e.Err }

// ParseThreshold validates the positional arguments and returns the
// release threshold.
func ParseThreshold(args []string) (int, error) {
	if len(args) == 0 {
		return 0, &ArgError{Code: ExitMissingArg, Msg: "you must pass a percent number"}
	}
	if len(args) > 1 {
		return 0, &ArgError{Code: ExitMissingArg, Msg: fmt.Sprintf("expected exactly one argument, got %d", len(args))}
	}

	n, err := parseLeadingInt(args[0])
	if err != nil {
		return 0, &ArgError{Code: ExitInvalidArg, Msg: fmt.Sprintf("%q is not a valid number", args[0]), Err: err}
	}
	if n < MinThreshold || n > MaxThreshold {
		return 0, &ArgError{Code: ExitOutOfRange, Msg: fmt.Sprintf("number must be between %d and %d, got %d", MinThreshold, MaxThreshold, n)}
	}
	return n, nil
}

// parseLeadingInt reads an optionally signed decimal prefix after leading
// whitespace and ignores whatever follows it, so "42abc" is 42. Values
// outside the 32 bit range are rejected.
func parseLeadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
