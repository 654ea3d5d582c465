package session

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/search"
	"github.com/poiesic/omnisearch/selection"
)

// DefaultDebounce is the quiet interval before a query is submitted.
const DefaultDebounce = 300 * time.Millisecond

// Searcher runs one federated search. *search.Coordinator implements it.
type Searcher interface {
	Run(ctx context.Context, req search.Request) (search.Batch, bool)
}

// Navigator performs client-side navigation to an activated result.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

// State is a copy of the session's visible state.
type State struct {
	Open          bool
	Query         string
	Generation    search.Generation
	Results       []core.Result
	Loading       bool
	SelectedIndex int
}

// Selected returns the highlighted result, if any.
func (s State) Selected() (core.Result, bool) {
	if len(s.Results) == 0 {
		return core.Result{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// Option configures a Session.
type Option func(*Session) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithDebounce sets the quiet interval before a query is submitted.
// Default is DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) error {
		if d < 0 {
			d = 0
		}
		s.debounce = d
		return nil
	}
}

// WithMonitor attaches a search monitor to every run.
func WithMonitor(monitor search.SearchMonitor) Option {
	return func(s *Session) error {
		s.monitor = monitor
		return nil
	}
}

// WithListener registers a callback invoked from the event loop with a
// copy of the state after every visible change. Listeners must not call
// back into the session synchronously.
func WithListener(fn func(State)) Option {
	return func(s *Session) error {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
		return nil
	}
}

// Session is one search surface. Create it with New and start Run.
type Session struct {
	searcher  Searcher
	navigator Navigator
	debounce  time.Duration
	monitor   search.SearchMonitor
	listeners []func(State)
	logger    *slog.Logger

	tracker search.Tracker
	events  chan event
	done    chan struct{}
	running atomic.Bool

	// Owned by the event loop.
	ctx      context.Context
	query    string
	shown    string // normalized query the current results answer
	results  []core.Result
	loading  bool
	sel      selection.Controller
	timer    *time.Timer
	pending  uint64
	inflight context.CancelFunc
}

// New creates a closed session.
func New(searcher Searcher, navigator Navigator, opts ...Option) (*Session, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if navigator == nil {
		return nil, ErrNavigatorRequired
	}

	s := &Session{
		searcher:  searcher,
		navigator: navigator,
		debounce:  DefaultDebounce,
		logger:    slog.Default(),
		events:    make(chan event, 64),
		done:      make(chan struct{}),
		results:   []core.Result{},
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run processes events until ctx is done. Pending debounces and in-flight
// searches are abandoned on exit. Run may be called only once.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.ctx = ctx
	defer close(s.done)
	defer s.abandon()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			ev.apply(s)
		}
	}
}

// Open opens the search surface.
func (s *Session) Open() error { return s.post(openEvent{}) }

// Close closes the search surface without clearing it.
func (s *Session) Close() error { return s.post(closeEvent{}) }

// Input reports the raw contents of the search field.
func (s *Session) Input(text string) error { return s.post(inputEvent{text: text}) }

// Key reports a key press.
func (s *Session) Key(key selection.Key) error { return s.post(keyEvent{key: key}) }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	if err := s.post(snapshotEvent{reply: reply}); err != nil {
		return State{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-s.done:
		return State{}, ErrSessionClosed
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (s *Session) post(ev event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) state() State {
	sel := s.sel.State()
	return State{
		Open:          s.sel.IsOpen(),
		Query:         s.query,
		Generation:    s.tracker.Latest(),
		Results:       append([]core.Result(nil), s.results...),
		Loading:       s.loading,
		SelectedIndex: sel.Index,
	}
}

func (s *Session) notify() {
	if len(s.listeners) == 0 {
		return
	}
	st := s.state()
	for _, fn := range s.listeners {
		fn(st)
	}
}

// schedule (re)arms the debounce timer for the current query.
func (s *Session) schedule() {
	s.pending++
	token := s.pending
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		_ = s.post(fireEvent{token: token})
	})
}

// unschedule drops any pending debounce. A timer that already fired is
// ignored through the token check.
func (s *Session) unschedule() {
	s.pending++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// submit starts a new generation for query and runs it in the background.
func (s *Session) submit(query string) {
	s.cancelInflight()
	gen := s.tracker.Next()
	s.loading = true

	ctx, cancel := context.WithCancel(s.ctx)
	s.inflight = cancel
	req := search.Request{
		Query:      query,
		Generation: gen,
		Tracker:    &s.tracker,
		Monitor:    s.monitor,
	}
	s.logger.Debug("query submitted", "query", query, "generation", gen)

	go func() {
		batch, fresh := s.searcher.Run(ctx, req)
		_ = s.post(batchEvent{batch: batch, fresh: fresh})
	}()
}

// invalidate abandons pending and in-flight work so nothing from before
// this point can be applied.
func (s *Session) invalidate() {
	s.unschedule()
	s.cancelInflight()
	s.tracker.Next()
	s.loading = false
}

func (s *Session) cancelInflight() {
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

func (s *Session) clear() {
	s.invalidate()
	s.query = ""
	s.shown = ""
	s.setResults([]core.Result{})
}

func (s *Session) setResults(results []core.Result) {
	s.results = results
	s.sel.SetResults(len(results))
}

func (s *Session) abandon() {
	s.unschedule()
	s.cancelInflight()
}
