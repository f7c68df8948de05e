package sharepoint

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain runs goleak verification for all tests in the package. The client
// starts no background goroutines of its own; this guards the transport and
// batch paths against accidental leaks.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Ignore HTTP transport goroutines from stdlib connection pooling
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
