package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1024 * 1024

// Line is one expression read from the input.
type Line struct {
	Number int    // 1-based line number in the decoded stream
	Text   string // trimmed of surrounding whitespace
}

// ScanLines calls fn for every non-blank line of r that does not start
// with '#'. Cancellation of ctx is checked between lines.
func ScanLines(ctx context.Context, r io.Reader, fn func(Line) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	n := 0
	for sc.Scan() {
		n++
		// Check for cancellation every 64 lines
		if n%64 == 1 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(Line{Number: n, Text: text}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read error after line %d: %w", n, err)
	}
	return nil
}
