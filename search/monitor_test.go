package search

import (
	"fmt"
	"sync"

	"github.com/poiesic/omnisearch/core"
)

// recordingMonitor captures monitor callbacks for assertions.
type recordingMonitor struct {
	mu        sync.Mutex
	started   []Generation
	attempts  []string
	sources   map[core.ResultType]int
	discarded []Generation
	finished  []Generation
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (r *recordingMonitor) Start(_ string, gen Generation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, gen)
}

func (r *recordingMonitor) AfterAttempt(_ core.ResultType, variant string, records int, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, fmt.Sprintf("%s:%d", variant, records))
}

func (r *recordingMonitor) AfterSource(kind core.ResultType, results []core.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sources == nil {
		r.sources = make(map[core.ResultType]int)
	}
	r.sources[kind] = len(results)
}

func (r *recordingMonitor) Discarded(gen Generation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discarded = append(r.discarded, gen)
}

func (r *recordingMonitor) Finish(gen Generation, _ []core.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, gen)
}

func (r *recordingMonitor) attemptLog() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.attempts...)
}

func (r *recordingMonitor) discardedGens() []Generation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Generation(nil), r.discarded...)
}
