// Package progress emits structured progress logs while a long input is
// being parsed.
package progress

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucrnz/shorthand/internal/util"
)

// Bar tracks bytes read and lines parsed. Update and AddLine are safe to
// call from any goroutine.
type Bar struct {
	MilestoneStep  int           // percentage step when the total is known
	RenderInterval time.Duration // interval between periodic logs
	Logger         *slog.Logger
	Quiet          bool

	total atomic.Int64
	read  atomic.Int64
	lines atomic.Int64

	mu            sync.Mutex
	nextMilestone int
	lastBytes     int64
	lastTime      time.Time

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a progress bar. A total <= 0 means the size is unknown.
func New(total int64, step int, interval time.Duration, logger *slog.Logger, quiet bool) *Bar {
	if step <= 0 {
		step = 10
	}
	if step > 50 {
		step = 50
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := &Bar{
		MilestoneStep:  step,
		RenderInterval: interval,
		Logger:         logger,
		Quiet:          quiet,
		nextMilestone:  step,
		done:           make(chan struct{}),
	}
	b.total.Store(total)
	return b
}

// SetTotal sets the expected number of raw bytes; <= 0 means unknown.
func (b *Bar) SetTotal(n int64) {
	b.total.Store(n)
}

// Update records n more raw bytes read.
func (b *Bar) Update(n int64) {
	if n <= 0 {
		return
	}
	b.read.Add(n)
	if !b.Quiet && b.total.Load() > 0 {
		b.maybeLogMilestone()
	}
}

// AddLine records one parsed line.
func (b *Bar) AddLine() {
	b.lines.Add(1)
}

// Lines returns the number of lines recorded so far.
func (b *Bar) Lines() int64 {
	return b.lines.Load()
}

// Start begins interval-based logging in a goroutine.
func (b *Bar) Start() {
	if b.Quiet || b.Logger == nil {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ticker := time.NewTicker(b.RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.logCurrent()
			case <-b.done:
				return
			}
		}
	}()
}

// Stop ends interval-based logging and waits for the logger goroutine.
func (b *Bar) Stop() {
	b.stopOnce.Do(func() { close(b.done) })
	b.wg.Wait()
}

func (b *Bar) logCurrent() {
	b.mu.Lock()
	defer b.mu.Unlock()

	read := b.read.Load()
	if read == b.lastBytes {
		return
	}

	now := time.Now()
	var speed int64
	if !b.lastTime.IsZero() {
		if elapsed := now.Sub(b.lastTime).Seconds(); elapsed > 0 {
			speed = int64(float64(read-b.lastBytes) / elapsed)
		}
	}

	attrs := []any{
		"lines", b.lines.Load(),
		"read_bytes", read,
		"read", util.HumanReadableBytes(read),
		"speed", util.HumanReadableBytes(speed) + "/s",
	}
	if total := b.total.Load(); total > 0 {
		attrs = append(attrs, "percent", int(b.percent()), "total", util.HumanReadableBytes(total))
	}
	b.Logger.Info("parse_progress", attrs...)

	b.lastTime = now
	b.lastBytes = read
}

func (b *Bar) maybeLogMilestone() {
	b.mu.Lock()
	defer b.mu.Unlock()

	pct := int(b.percent())
	for pct >= b.nextMilestone && b.nextMilestone <= 100 {
		b.Logger.Info("parse_progress",
			"percent", b.nextMilestone,
			"lines", b.lines.Load(),
			"read_bytes", b.read.Load(),
			"total", util.HumanReadableBytes(b.total.Load()),
		)
		b.nextMilestone += b.MilestoneStep
	}
}

func (b *Bar) percent() float64 {
	total := b.total.Load()
	if total <= 0 {
		return 0
	}
	p := float64(b.read.Load()) / float64(total) * 100
	if p > 100 {
		return 100
	}
	return p
}
