// Package report renders parse results as text, seconds or JSON Lines.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Format selects the output encoding.
type Format int

const (
	Text Format = iota
	Seconds
	JSON
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Seconds:
		return "seconds"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat maps a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return Text, nil
	case "seconds", "secs":
		return Seconds, nil
	case "json", "jsonl":
		return JSON, nil
	default:
		return Text, fmt.Errorf("unsupported output format %q: use text, seconds or json", s)
	}
}

// Result is the outcome of parsing one expression.
type Result struct {
	Line     int // 0 for command-line arguments
	Input    string
	Duration time.Duration
	Err      error
}

// Summary is the aggregate written by --sum.
type Summary struct {
	Total  time.Duration
	Count  int
	Failed int
}

// Writer encodes results to an underlying writer. Call Flush when done.
type Writer struct {
	format Format
	w      *bufio.Writer
	enc    *json.Encoder
}

// NewWriter returns a Writer for the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{format: format, w: bw, enc: json.NewEncoder(bw)}
}

type jsonResult struct {
	Line        int     `json:"line,omitempty"`
	Input       string  `json:"input"`
	OK          bool    `json:"ok"`
	Duration    string  `json:"duration,omitempty"`
	Seconds     float64 `json:"seconds"`
	Nanoseconds int64   `json:"nanoseconds"`
	Error       string  `json:"error,omitempty"`
}

type jsonSummary struct {
	Total       string  `json:"total"`
	Seconds     float64 `json:"seconds"`
	Nanoseconds int64   `json:"nanoseconds"`
	Count       int     `json:"count"`
	Failed      int     `json:"failed"`
}

// Write emits one result. Failed results are only written in JSON;
// the text formats leave them to the log.
func (w *Writer) Write(r Result) error {
	switch w.format {
	case JSON:
		rec := jsonResult{
			Line:        r.Line,
			Input:       r.Input,
			OK:          r.Err == nil,
			Seconds:     r.Duration.Seconds(),
			Nanoseconds: int64(r.Duration),
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		} else {
			rec.Duration = r.Duration.String()
		}
		return w.enc.Encode(rec)
	default:
		if r.Err != nil {
			return nil
		}
		_, err := fmt.Fprintf(w.w, "%s\t%s\n", r.Input, w.value(r.Duration))
		return err
	}
}

// WriteSummary emits the total of all results.
func (w *Writer) WriteSummary(s Summary) error {
	if w.format == JSON {
		return w.enc.Encode(jsonSummary{
			Total:       s.Total.String(),
			Seconds:     s.Total.Seconds(),
			Nanoseconds: int64(s.Total),
			Count:       s.Count,
			Failed:      s.Failed,
		})
	}
	_, err := fmt.Fprintln(w.w, w.value(s.Total))
	return err
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) value(d time.Duration) string {
	if w.format == Seconds {
		return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	}
	return d.String()
}
