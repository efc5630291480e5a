package shorthand

import (
	"math"
	"time"
	"unicode"
	"unicode/utf8"
)

// token is one magnitude/unit pair read from the input.
type token struct {
	whole  string // digits before the decimal point
	frac   string // digits after the decimal point
	unit   Unit
	offset int
}

// value returns the length of the token. It reports false if the result
// does not fit in a time.Duration.
func (t token) value() (time.Duration, bool) {
	factor := uint64(t.unit.Factor())

	var v uint64
	for i := 0; i < len(t.whole); i++ {
		if v > math.MaxInt64/10 {
			return 0, false
		}
		v = v*10 + uint64(t.whole[i]-'0')
		if v > math.MaxInt64 {
			return 0, false
		}
	}
	if v > math.MaxInt64/factor {
		return 0, false
	}
	v *= factor

	// Digits past what f can hold are below nanosecond resolution and are dropped.
	var f uint64
	scale := 1.0
	for i := 0; i < len(t.frac); i++ {
		if f > math.MaxInt64/10 {
			break
		}
		f = f*10 + uint64(t.frac[i]-'0')
		scale *= 10
	}
	if f > 0 {
		v += uint64(float64(f) * (float64(factor) / scale))
		if v > math.MaxInt64 {
			return 0, false
		}
	}
	return time.Duration(v), true
}

// scanner walks the input left to right, one token at a time.
type scanner struct {
	src string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.src) {
		r, size := utf8.DecodeRuneInString(sc.src[sc.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		sc.pos += size
	}
}

// next reads the next token. It returns ok == false once only whitespace remains.
func (sc *scanner) next() (tok token, ok bool, err error) {
	sc.skipSpace()
	if sc.pos >= len(sc.src) {
		return token{}, false, nil
	}

	start := sc.pos
	dot := -1
	end := start
	for ; end < len(sc.src); end++ {
		c := sc.src[end]
		if c == '.' && dot < 0 {
			dot = end
			continue
		}
		if c < '0' || c > '9' {
			break
		}
	}

	digits := end - start
	if dot >= 0 {
		digits--
	}
	if digits == 0 {
		return token{}, false, parseError(sc.src, start, ErrInvalidNumericSegment)
	}
	if end >= len(sc.src) {
		return token{}, false, parseError(sc.src, end, ErrTrailingIncompleteToken)
	}
	u, known := LookupUnit(sc.src[end])
	if !known {
		return token{}, false, parseError(sc.src, end, ErrUnrecognizedUnit)
	}

	tok = token{whole: sc.src[start:end], unit: u, offset: start}
	if dot >= 0 {
		tok.whole = sc.src[start:dot]
		tok.frac = sc.src[dot+1 : end]
	}
	sc.pos = end + 1
	return tok, true, nil
}
