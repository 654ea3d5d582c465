package seed

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/omnisearch/core"
)

// Progress follows a seeding run batch by batch. A status line is
// rewritten each time at least interval more listings have been committed,
// and Finish closes it with a per-source breakdown.
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	total    int
	batches  int
	interval int

	stored    int
	committed int
	lastLine  int
	byKind    map[core.ResultType]int
	began     time.Time
}

// NewProgress starts the clock for a run of total listings written in
// batches of batchSize.
func NewProgress(out io.Writer, total, batchSize, interval int) *Progress {
	if out == nil {
		out = io.Discard
	}
	if interval <= 0 {
		interval = 1
	}
	batches := 0
	if batchSize > 0 {
		batches = (total + batchSize - 1) / batchSize
	}
	return &Progress{
		out:      out,
		total:    total,
		batches:  batches,
		interval: interval,
		byKind:   make(map[core.ResultType]int),
		began:    time.Now(),
	}
}

// Committed records a batch that reached the repository.
func (p *Progress) Committed(batch []*core.Listing) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.committed++
	p.stored += len(batch)
	for _, l := range batch {
		p.byKind[l.Kind]++
	}
	if p.stored-p.lastLine >= p.interval || p.stored == p.total {
		p.line()
		p.lastLine = p.stored
	}
}

// Stored returns the number of committed listings.
func (p *Progress) Stored() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stored
}

// ByKind returns committed listings per source.
func (p *Progress) ByKind() map[core.ResultType]int {
	p.mu.Lock()
	defer p.mu.Unlock()

	counts := make(map[core.ResultType]int, len(p.byKind))
	for k, n := range p.byKind {
		counts[k] = n
	}
	return counts
}

// Elapsed returns the time since the run began.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.began)
}

// Finish ends the status line and lists what each source received.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastLine != p.stored {
		p.line()
	}
	fmt.Fprintln(p.out)
	for _, kind := range core.ResultTypes {
		if n := p.byKind[kind]; n > 0 {
			fmt.Fprintf(p.out, "  %-10s %d\n", kind.Slug(), n)
		}
	}
}

// line rewrites the status line. Caller holds mu.
func (p *Progress) line() {
	fmt.Fprintf(p.out, "\rbatch %d/%d: %d/%d listings stored", p.committed, p.batches, p.stored, p.total)
}
