package retag

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Progress reports how far a retag run has got. A status line is rewritten
// in place each time at least interval grants finish after the previous line.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	interval int
	done     int
	changed  int
	printed  int
	start    time.Time
	running  bool
}

// NewProgress returns a tracker for total grants writing to w. A nil w
// discards output and an interval below one reports every batch.
func NewProgress(w io.Writer, total, interval int) *Progress {
	if w == nil {
		w = io.Discard
	}
	return &Progress{
		w:        w,
		total:    total,
		interval: max(interval, 1),
	}
}

// Start resets the counters and the clock.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()
	p.running = true
	p.done, p.changed, p.printed = 0, 0, 0
}

// Batch records n processed grants, changed of which received new tags.
func (p *Progress) Batch(n, changed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+n, p.total)
	p.changed += changed
	if p.done-p.printed >= p.interval {
		p.print()
		p.printed = p.done
	}
}

// Finish prints the final status line and terminates it.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = p.total
	p.print()
	fmt.Fprintln(p.w)
}

// Changed returns the number of grants whose tags changed so far.
func (p *Progress) Changed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.changed
}

// Elapsed returns the time since Start, or zero before it.
func (p *Progress) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return 0
	}
	return time.Since(p.start)
}

// print writes the status line. Callers hold mu.
func (p *Progress) print() {
	var rate, percent float64
	if secs := time.Since(p.start).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total) * 100
	}
	fmt.Fprintf(p.w, "\rRetagged %d/%d grants (%.1f%%), %d changed, %.1f grants/s",
		p.done, p.total, percent, p.changed, rate)
}
