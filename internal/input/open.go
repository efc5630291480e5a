// Package input opens the line source for the CLI: a file or stdin,
// transparently decompressed when it is gzip, zstd or xz encoded.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/lucrnz/shorthand/internal/util"
)

// ErrTooLarge is returned once more than Options.MaxBytes of decoded input is read.
var ErrTooLarge = errors.New("input exceeds maximum size")

// Options configures Open.
type Options struct {
	MaxBytes int64 // limit on decoded bytes (0 = unlimited)
	Stdin    io.Reader
	// OnRead, when set, receives the number of raw (still encoded) bytes
	// consumed by each read. Decoders may call it from their own goroutines.
	OnRead func(n int64)
}

// Source is an open, decoded input stream.
type Source struct {
	Name string
	Type Type
	Size int64 // size on disk, or -1 when unknown (stdin)

	r       io.Reader
	raw     *countingReader
	closers []func() error
}

// Open opens path ("-" for stdin) and wraps it in the decoder matching its
// magic bytes.
func Open(ctx context.Context, path string, opts Options) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := &Source{Name: path, Size: -1}

	var base io.Reader
	if path == "-" {
		base = opts.Stdin
		if base == nil {
			base = os.Stdin
		}
		src.Name = "stdin"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		src.closers = append(src.closers, f.Close)
		if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
			src.Size = info.Size()
		}
		base = f
	}

	src.raw = &countingReader{r: base, onRead: opts.OnRead}
	br := bufio.NewReader(src.raw)
	typ, err := Detect(br)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to read input header: %w", err)
	}
	src.Type = typ

	var decoded io.Reader
	switch typ {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("gzip decode error: %w", err)
		}
		src.closers = append(src.closers, gz.Close)
		decoded = gz
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("zstd decode error: %w", err)
		}
		src.closers = append(src.closers, func() error { zr.Close(); return nil })
		decoded = zr
	case Xz:
		xr, err := xz.NewReader(br)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("xz decode error: %w", err)
		}
		decoded = xr
	default:
		decoded = br
	}

	src.r = &limitReader{r: decoded, max: opts.MaxBytes}
	return src, nil
}

// Read returns decoded bytes.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// RawBytes returns how many raw bytes have been consumed so far. Size is
// measured in the same unit.
func (s *Source) RawBytes() int64 {
	return s.raw.n.Load()
}

// Close releases the decoder and the underlying file, innermost first.
func (s *Source) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

type countingReader struct {
	r      io.Reader
	n      atomic.Int64
	onRead func(n int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.n.Add(int64(n))
		if c.onRead != nil {
			c.onRead(int64(n))
		}
	}
	return n, err
}

type limitReader struct {
	r    io.Reader
	max  int64
	read int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.max > 0 && l.read > l.max {
		return n, fmt.Errorf("%w: limit is %s", ErrTooLarge, util.HumanReadableBytes(l.max))
	}
	return n, err
}
