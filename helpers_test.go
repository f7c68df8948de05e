package sharepoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testDigest is the digest value the test contextinfo handler hands out.
const testDigest = "0xTESTDIGEST,29 Aug 2026 12:00:00 -0000"

// newTestServer starts an httptest server that answers _api/contextinfo
// itself and delegates everything else to handler. It returns the server and
// a client bound to it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(strings.ToLower(r.URL.Path), "/_api/contextinfo") {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"FormDigestValue":          testDigest,
				"FormDigestTimeoutSeconds": 1800,
			})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, WithMaxRetries(1), WithRetryDelay(1))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return server, client
}
