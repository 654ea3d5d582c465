// Package mock provides test doubles for the fetch.Client interface.
//
// MockClient serves canned records per (endpoint, exact term) pair and lays
// them out in the same list shape as the real source, so adapters decode
// them exactly as they would a live response. Terms are matched exactly,
// emulating the case-sensitive backends the variant fallback exists for.
//
// # Usage in Tests
//
//	client := mock.NewMockClient().
//	    Add("/items/", "Phone", `{"id":1,"title":"Phone"}`).
//	    Fail("/auctions/", errors.New("boom"))
//
//	// Custom behavior injection (latency, gating)
//	client.SearchFunc = func(ctx context.Context, endpoint, term string) ([]byte, error) {
//	    <-release
//	    return client.Respond(endpoint, term)
//	}
//
//	// Inspect traffic
//	calls := client.Calls()
package mock
