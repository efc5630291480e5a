// Package shorthand parses compact duration text such as "3h", "2.5m" or
// "1w 1d" into a time.Duration.
//
// The grammar is a sequence of <magnitude><unit> tokens, optionally
// separated by whitespace. A magnitude is a run of decimal digits with at
// most one '.', and the unit is one of w, d, h, m or s:
//
//	3h        3 hours
//	2.5m      150 seconds
//	1w 1d     8 days
//	1w1d      8 days
//	1h 2h     3 hours
//
// Parse is the strict form and reports why a string was rejected.
// ToDuration is the lenient form and maps every failure to zero.
package shorthand

import (
	"math"
	"time"
)

// Parse converts shorthand text to a duration. On failure the returned
// error is a *ParseError wrapping one of the Err* sentinels and the
// duration is zero.
func Parse(s string) (time.Duration, error) {
	sc := scanner{src: s}
	var total time.Duration
	n := 0
	for {
		tok, ok, err := sc.next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		d, ok := tok.value()
		if !ok || total > math.MaxInt64-d {
			return 0, parseError(s, tok.offset, ErrOutOfRange)
		}
		total += d
		n++
	}
	if n == 0 {
		return 0, parseError(s, sc.pos, ErrEmptyInput)
	}
	return total, nil
}

// TryParse is Parse without the error detail.
func TryParse(s string) (time.Duration, bool) {
	d, err := Parse(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// ToDuration returns the parsed duration, or zero if s is not valid
// shorthand. Use Parse when an explicit zero must be told apart from bad input.
func ToDuration(s string) time.Duration {
	d, _ := TryParse(s)
	return d
}

// MustParse is like Parse but panics on invalid input.
// Intended for constants, not user-supplied text.
func MustParse(s string) time.Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
