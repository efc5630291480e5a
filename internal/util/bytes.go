package util

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseByteSize parses sizes such as "64MiB", "512MB" or "1048576".
// "0" and the empty string mean unlimited.
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("byte size %q is too large", s)
	}
	return int64(n), nil
}

// HumanReadableBytes formats n using IEC units (KiB, MiB, ...).
func HumanReadableBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}
