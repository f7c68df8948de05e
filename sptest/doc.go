// Package sptest provides testing utilities for applications using the
// sharepoint-go client.
//
// # Mock Server
//
// Use MockServer to record and inspect HTTP requests:
//
//	server := sptest.NewMockServer()
//	defer server.Close()
//
//	client, _ := sharepoint.New(server.URL)
//	// ... use client ...
//
//	requests := server.Requests()
//	// assert on requests
//
// # Test Client
//
// Use NewTestClient for a pre-configured client with a mock server:
//
//	func TestMyFeature(t *testing.T) {
//	    client, server := sptest.NewTestClient(t)
//	    // server is automatically closed when the test ends
//
//	    _, _ = client.Web().Get(ctx)
//	    if server.RequestCount() != 1 {
//	        t.Error("expected 1 request")
//	    }
//	}
package sptest
