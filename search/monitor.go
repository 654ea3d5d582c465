package search

import (
	"log/slog"

	"github.com/poiesic/omnisearch/core"
)

// SearchMonitor provides hooks to observe a federated search.
// AfterAttempt and AfterSource are called concurrently from per-source
// workers; implementations must be safe for concurrent use.
type SearchMonitor interface {
	Start(query string, gen Generation)
	AfterAttempt(kind core.ResultType, variant string, records int, err error)
	AfterSource(kind core.ResultType, results []core.Result)
	Discarded(gen Generation)
	Finish(gen Generation, results []core.Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ Generation)                             {}
func (n *noopMonitor) AfterAttempt(_ core.ResultType, _ string, _ int, _ error) {}
func (n *noopMonitor) AfterSource(_ core.ResultType, _ []core.Result)           {}
func (n *noopMonitor) Discarded(_ Generation)                                   {}
func (n *noopMonitor) Finish(_ Generation, _ []core.Result)                     {}

// LogMonitor reports every search stage to a slog.Logger at debug level.
type LogMonitor struct {
	Logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

func (m *LogMonitor) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *LogMonitor) Start(query string, gen Generation) {
	m.logger().Debug("search started", "query", query, "generation", gen)
}

func (m *LogMonitor) AfterAttempt(kind core.ResultType, variant string, records int, err error) {
	if err != nil {
		m.logger().Debug("attempt failed", "source", kind, "variant", variant, "err", err)
		return
	}
	m.logger().Debug("attempt finished", "source", kind, "variant", variant, "records", records)
}

func (m *LogMonitor) AfterSource(kind core.ResultType, results []core.Result) {
	m.logger().Debug("source finished", "source", kind, "results", len(results))
}

func (m *LogMonitor) Discarded(gen Generation) {
	m.logger().Debug("stale results discarded", "generation", gen)
}

func (m *LogMonitor) Finish(gen Generation, results []core.Result) {
	m.logger().Debug("search finished", "generation", gen, "results", len(results))
}
