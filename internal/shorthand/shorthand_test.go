package shorthand

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	str2duration "github.com/xhit/go-str2duration/v2"
	"golang.org/x/sync/errgroup"
)

const day = 24 * time.Hour

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"3h", 3 * time.Hour},
		{"2.5m", 150 * time.Second},
		{"60m", time.Hour},
		{"1h", time.Hour},
		{"1d", day},
		{"1w", 7 * day},
		{"1w 1d", 8 * day},
		{"1w1d", 8 * day},
		{"1h 2h", 3 * time.Hour},
		{"45s", 45 * time.Second},
		{"0s", 0},
		{"1.5h", 90 * time.Minute},
		{"5.h", 5 * time.Hour},
		{".5h", 30 * time.Minute},
		{"0.1s", 100 * time.Millisecond},
		{"0.000000001s", time.Nanosecond},
		{"0.0000000001s", 0},
		{"007m", 7 * time.Minute},
		{"  1h\t30m\n", 90 * time.Minute},
		{"1h 30m", 90 * time.Minute},
		{"1w 2d 3h 4m 5s", 7*day + 2*day + 3*time.Hour + 4*time.Minute + 5*time.Second},
		{"9223372036s", 9223372036 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		want   error
		offset int
	}{
		{"", ErrEmptyInput, 0},
		{"   ", ErrEmptyInput, 3},
		{"abc", ErrInvalidNumericSegment, 0},
		{"-1h", ErrInvalidNumericSegment, 0},
		{"+1h", ErrInvalidNumericSegment, 0},
		{".", ErrInvalidNumericSegment, 0},
		{".h", ErrInvalidNumericSegment, 0},
		{"1h x", ErrInvalidNumericSegment, 3},
		{"1ms", ErrInvalidNumericSegment, 2},
		{"1", ErrTrailingIncompleteToken, 1},
		{"1h 30", ErrTrailingIncompleteToken, 5},
		{"2.", ErrTrailingIncompleteToken, 2},
		{"1x", ErrUnrecognizedUnit, 1},
		{"1H", ErrUnrecognizedUnit, 1},
		{"1 h", ErrUnrecognizedUnit, 1},
		{"1,5h", ErrUnrecognizedUnit, 1},
		{"1.2.3h", ErrUnrecognizedUnit, 3},
		{"1y", ErrUnrecognizedUnit, 1},
		{"300000w", ErrOutOfRange, 0},
		{"9223372037s", ErrOutOfRange, 0},
		{"99999999999999999999s", ErrOutOfRange, 0},
		{"106751d 1d", ErrOutOfRange, 8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.Error(t, err)
			assert.Zero(t, got)
			assert.ErrorIs(t, err, tt.want)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.input, pe.Input)
			assert.Equal(t, tt.offset, pe.Offset)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("1x")
	require.Error(t, err)
	assert.Equal(t, `invalid duration "1x": unrecognized unit at offset 1`, err.Error())
}

func TestWhitespaceIsOptional(t *testing.T) {
	spaced, err := Parse("1w 1d")
	require.NoError(t, err)
	packed, err := Parse("1w1d")
	require.NoError(t, err)
	assert.Equal(t, spaced, packed)
}

func TestTokenOrderDoesNotMatter(t *testing.T) {
	orders := []string{
		"1h 2h",
		"2h 1h",
		"1h2h",
	}
	for _, s := range orders {
		assert.Equal(t, 3*time.Hour, MustParse(s), s)
	}

	perms := []string{
		"1w 2d 3h 4m 5s",
		"5s 4m 3h 2d 1w",
		"3h 1w 5s 2d 4m",
		"4m5s1w3h2d",
	}
	want := MustParse(perms[0])
	for _, s := range perms[1:] {
		assert.Equal(t, want, MustParse(s), s)
	}
}

func TestResultIsNonNegative(t *testing.T) {
	for _, s := range []string{"0s", "0.0w", "1s", "9223372036s", "1w 1d 1h 1m 1s", "0.5m 0.25s"} {
		d, err := Parse(s)
		require.NoError(t, err, s)
		assert.GreaterOrEqual(t, d, time.Duration(0), s)
	}
}

// str2duration accepts the integer, space-free subset of the grammar.
func TestParseAgreesWithStr2Duration(t *testing.T) {
	for _, s := range []string{"3h", "60m", "1d", "1w1d", "2w", "36h", "90m", "1w2d3h4m5s", "100s"} {
		t.Run(s, func(t *testing.T) {
			want, err := str2duration.ParseDuration(s)
			require.NoError(t, err)
			assert.Equal(t, want, MustParse(s))
		})
	}
}

func TestTryParse(t *testing.T) {
	d, ok := TryParse("1w 1d")
	assert.True(t, ok)
	assert.Equal(t, 8*day, d)

	d, ok = TryParse("abc")
	assert.False(t, ok)
	assert.Zero(t, d)
}

func TestToDuration(t *testing.T) {
	assert.Equal(t, 3*time.Hour, ToDuration("3h"))
	assert.Equal(t, 150*time.Second, ToDuration("2.5m"))
	assert.Zero(t, ToDuration(""))
	assert.Zero(t, ToDuration("abc"))
	assert.Zero(t, ToDuration("1h x"))
	assert.Zero(t, ToDuration("0s"))
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, time.Hour, MustParse("60m"))
	assert.Panics(t, func() { MustParse("abc") })
}

func TestParseConcurrent(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				d, err := Parse("1w 1d 2.5m")
				if err != nil {
					return err
				}
				if d != 8*day+150*time.Second {
					return errors.New("unexpected result " + d.String())
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
