package session

import (
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/search"
	"github.com/poiesic/omnisearch/selection"
)

// event is applied by the session's loop goroutine.
type event interface {
	apply(s *Session)
}

type openEvent struct{}

func (openEvent) apply(s *Session) {
	if s.sel.IsOpen() {
		return
	}
	s.sel.Open()
	// Work dropped on close is redone once the surface is visible again.
	if q := core.NormalizeQuery(s.query); q != "" && q != s.shown {
		s.schedule()
	}
	s.notify()
}

type closeEvent struct{}

func (closeEvent) apply(s *Session) {
	if !s.sel.IsOpen() {
		return
	}
	s.sel.Close()
	s.invalidate()
	s.notify()
}

type inputEvent struct {
	text string
}

func (e inputEvent) apply(s *Session) {
	if !s.sel.IsOpen() {
		return
	}
	s.query = e.text

	if core.NormalizeQuery(e.text) == "" {
		// Cleared input takes effect at once; nothing is fetched.
		s.invalidate()
		s.shown = ""
		s.setResults([]core.Result{})
		s.notify()
		return
	}

	s.schedule()
	s.notify()
}

type fireEvent struct {
	token uint64
}

func (e fireEvent) apply(s *Session) {
	if e.token != s.pending || !s.sel.IsOpen() {
		return
	}
	s.timer = nil
	query := core.NormalizeQuery(s.query)
	if query == "" {
		return
	}
	s.submit(query)
	s.notify()
}

type batchEvent struct {
	batch search.Batch
	fresh bool
}

func (e batchEvent) apply(s *Session) {
	if !e.fresh || !s.tracker.IsCurrent(e.batch.Generation) {
		s.logger.Debug("stale results dropped", "query", e.batch.Query, "generation", e.batch.Generation)
		return
	}
	s.cancelInflight()
	s.loading = false
	s.shown = e.batch.Query
	s.setResults(e.batch.Results)
	s.logger.Debug("results applied", "query", e.batch.Query, "generation", e.batch.Generation,
		"results", len(e.batch.Results), "elapsed", e.batch.Elapsed)
	s.notify()
}

type keyEvent struct {
	key selection.Key
}

func (e keyEvent) apply(s *Session) {
	action := s.sel.Handle(e.key)

	switch action.Kind {
	case selection.ActionOpen, selection.ActionMove:
		s.notify()
	case selection.ActionActivate:
		target := s.results[action.Index]
		s.navigator.Navigate(target.URL)
		s.clear()
		s.notify()
	case selection.ActionDismiss:
		s.invalidate()
		s.notify()
	}
}

type snapshotEvent struct {
	reply chan<- State
}

func (e snapshotEvent) apply(s *Session) {
	e.reply <- s.state()
}
