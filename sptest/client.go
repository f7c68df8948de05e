package sptest

import (
	sharepoint "github.com/pedro-pedrosa/sharepoint-go"
)

// TestingT is an interface that matches *testing.T and *testing.B.
type TestingT interface {
	Fatalf(format string, args ...any)
	Cleanup(func())
	Helper()
}

// NewTestClient creates a client bound to a fresh MockServer. Both are
// cleaned up when the test ends.
func NewTestClient(t TestingT) (*sharepoint.Client, *MockServer) {
	t.Helper()

	server := NewMockServer()

	client, err := sharepoint.New(server.URL,
		sharepoint.WithMaxRetries(1),
	)
	if err != nil {
		server.Close()
		t.Fatalf("failed to create test client: %v", err)
	}

	t.Cleanup(server.Close)

	return client, server
}
