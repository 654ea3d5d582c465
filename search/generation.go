package search

import "sync/atomic"

// Generation identifies one query submission. Generations increase
// monotonically for the life of a Tracker and are never reused.
type Generation uint64

// Tracker issues generations and answers whether one is still current.
// Only the session that owns it should call Next; IsCurrent may be called
// from any goroutine.
type Tracker struct {
	latest atomic.Uint64
}

// Next starts a new generation and returns it.
func (t *Tracker) Next() Generation {
	return Generation(t.latest.Add(1))
}

// Latest returns the most recently issued generation, or 0 if none.
func (t *Tracker) Latest() Generation {
	return Generation(t.latest.Load())
}

// IsCurrent reports whether gen is still the latest generation.
func (t *Tracker) IsCurrent(gen Generation) bool {
	return gen == t.Latest()
}
