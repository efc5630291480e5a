package shorthand

import "time"

// Unit is a single-letter time unit recognized in shorthand notation.
type Unit byte

const (
	Week   Unit = 'w'
	Day    Unit = 'd'
	Hour   Unit = 'h'
	Minute Unit = 'm'
	Second Unit = 's'
)

// units maps each symbol to its conversion factor.
var units = map[Unit]time.Duration{
	Week:   7 * 24 * time.Hour,
	Day:    24 * time.Hour,
	Hour:   time.Hour,
	Minute: time.Minute,
	Second: time.Second,
}

// LookupUnit reports whether c is a known unit symbol.
func LookupUnit(c byte) (Unit, bool) {
	u := Unit(c)
	_, ok := units[u]
	return u, ok
}

// Units returns every known unit, largest first.
func Units() []Unit {
	return []Unit{Week, Day, Hour, Minute, Second}
}

// Factor returns the length of one u, or 0 for an unknown unit.
func (u Unit) Factor() time.Duration {
	return units[u]
}

// Symbol returns the character used for u in shorthand text.
func (u Unit) Symbol() string {
	return string(rune(u))
}

func (u Unit) String() string {
	switch u {
	case Week:
		return "week"
	case Day:
		return "day"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	case Second:
		return "second"
	default:
		return "unknown(" + string(rune(u)) + ")"
	}
}
