package shorthand

import (
	"time"

	"github.com/spf13/pflag"
)

// Value is a pflag.Value that accepts shorthand text.
type Value time.Duration

var _ pflag.Value = (*Value)(nil)

// NewValue stores def in *p and returns p as a flag value.
func NewValue(def time.Duration, p *time.Duration) *Value {
	*p = def
	return (*Value)(p)
}

func (v *Value) Set(s string) error {
	d, err := Parse(s)
	if err != nil {
		return err
	}
	*v = Value(d)
	return nil
}

// String returns the value in Go's time.Duration notation.
func (v *Value) String() string {
	return time.Duration(*v).String()
}

func (v *Value) Type() string {
	return "shorthand"
}

// DurationVarP defines a shorthand duration flag on fs.
func DurationVarP(fs *pflag.FlagSet, p *time.Duration, name, short string, def time.Duration, usage string) {
	fs.VarP(NewValue(def, p), name, short, usage)
}

// Duration is a time.Duration that decodes from shorthand text, for use in
// configuration structs.
type Duration time.Duration

// UnmarshalText parses strictly; invalid text is an error, not zero.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
