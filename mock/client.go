package mock

import (
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/poiesic/omnisearch/fetch"
	"github.com/poiesic/omnisearch/source"
)

// Call records one Search invocation.
type Call struct {
	Endpoint string
	Term     string
}

// MockClient is a test double for fetch.Client. It is safe for concurrent use.
type MockClient struct {
	// SearchFunc is called by Search if set.
	// If nil, Search returns Respond(endpoint, term).
	SearchFunc func(ctx context.Context, endpoint, term string) ([]byte, error)

	mu      sync.Mutex
	shapes  map[string]source.ListShape
	records map[string]map[string][]jsoniter.RawMessage
	fail    map[string]error
	calls   []Call
}

var _ fetch.Client = (*MockClient)(nil)

// NewMockClient creates a client that knows the list shape of every
// default source and returns empty lists until records are added.
func NewMockClient() *MockClient {
	shapes := make(map[string]source.ListShape)
	for _, a := range source.Defaults() {
		shapes[a.Endpoint()] = a.Shape()
	}
	return &MockClient{
		shapes:  shapes,
		records: make(map[string]map[string][]jsoniter.RawMessage),
		fail:    make(map[string]error),
	}
}

// Add registers raw JSON records returned for an exact term.
func (m *MockClient) Add(endpoint, term string, records ...string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()

	byTerm, ok := m.records[endpoint]
	if !ok {
		byTerm = make(map[string][]jsoniter.RawMessage)
		m.records[endpoint] = byTerm
	}
	for _, r := range records {
		byTerm[term] = append(byTerm[term], jsoniter.RawMessage(r))
	}
	return m
}

// Fail makes every request to endpoint return err.
func (m *MockClient) Fail(endpoint string, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[endpoint] = err
	return m
}

// Search records the call and returns the canned response.
func (m *MockClient) Search(ctx context.Context, endpoint, term string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Endpoint: endpoint, Term: term})
	fn := m.SearchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, endpoint, term)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Respond(endpoint, term)
}

// Respond returns the canned response for a request without recording it.
func (m *MockClient) Respond(endpoint, term string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail[endpoint]; err != nil {
		return nil, err
	}
	return m.shapes[endpoint].Encode(m.records[endpoint][term])
}

// Calls returns a copy of all recorded calls in arrival order.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsTo returns the terms requested from one endpoint in arrival order.
func (m *MockClient) CallsTo(endpoint string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var terms []string
	for _, c := range m.calls {
		if c.Endpoint == endpoint {
			terms = append(terms, c.Term)
		}
	}
	return terms
}

// CallCount returns the number of Search calls.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears recorded calls. Canned records and failures are kept.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
