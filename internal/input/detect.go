package input

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// Type identifies how an input stream is encoded.
type Type int

const (
	Plain Type = iota
	Gzip
	Zstd
	Xz
)

func (t Type) String() string {
	switch t {
	case Plain:
		return "plain"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	default:
		return "unknown"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect peeks at the head of br and reports its encoding. Nothing is consumed.
func Detect(br *bufio.Reader) (Type, error) {
	head, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return Plain, err
	}
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return Xz, nil
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd, nil
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip, nil
	default:
		return Plain, nil
	}
}
