package sptest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockServer is a test HTTP server that records requests for verification.
// It answers _api/contextinfo calls itself so write requests can obtain a
// form digest; everything else goes through ResponseFunc.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*RecordedRequest

	// ResponseFunc allows customizing responses. If nil, returns an empty
	// JSON object with status 200.
	ResponseFunc func(r *http.Request) (int, any)
}

// RecordedRequest represents a recorded HTTP request.
type RecordedRequest struct {
	Method      string
	Path        string
	Query       string
	Body        []byte
	Header      http.Header
	ContentType string
}

// TestDigest is the form digest value the mock contextinfo endpoint hands
// out.
const TestDigest = "0x1234567890,29 Aug 2026 12:00:00 -0000"

// NewMockServer creates a new mock server for testing.
func NewMockServer() *MockServer {
	ms := &MockServer{
		requests: make([]*RecordedRequest, 0),
	}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
		}

		// The digest fetch is transport plumbing; keep it out of the
		// recorded requests so tests see only their own calls.
		if strings.HasSuffix(strings.ToLower(r.URL.Path), "/_api/contextinfo") {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"FormDigestValue":          TestDigest,
				"FormDigestTimeoutSeconds": 1800,
			})
			return
		}

		ms.mu.Lock()
		ms.requests = append(ms.requests, &RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			Body:        body,
			Header:      r.Header.Clone(),
			ContentType: r.Header.Get("Content-Type"),
		})
		ms.mu.Unlock()

		status := http.StatusOK
		var response any = map[string]any{}

		if ms.ResponseFunc != nil {
			status, response = ms.ResponseFunc(r)
		}

		if raw, ok := response.([]byte); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write(raw)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))

	return ms
}

// Requests returns all recorded requests.
func (ms *MockServer) Requests() []*RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]*RecordedRequest{}, ms.requests...)
}

// RequestCount returns the number of recorded requests.
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// Reset clears all recorded requests.
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = make([]*RecordedRequest, 0)
}

// LastRequest returns the most recent request, or nil if none.
func (ms *MockServer) LastRequest() *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return nil
	}
	return ms.requests[len(ms.requests)-1]
}

// RequestAt returns the request at the given index, or nil if out of bounds.
func (ms *MockServer) RequestAt(index int) *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if index < 0 || index >= len(ms.requests) {
		return nil
	}
	return ms.requests[index]
}

// RespondWithJSON configures the server to answer every request with the
// given status and raw JSON body.
func (ms *MockServer) RespondWithJSON(status int, body string) {
	ms.ResponseFunc = func(r *http.Request) (int, any) {
		return status, []byte(body)
	}
}

// RespondWithError configures the server to answer with an OData error
// envelope.
func (ms *MockServer) RespondWithError(statusCode int, code, message string) {
	ms.ResponseFunc = func(r *http.Request) (int, any) {
		return statusCode, map[string]any{
			"odata.error": map[string]any{
				"code": code,
				"message": map[string]any{
					"lang":  "en-US",
					"value": message,
				},
			},
		}
	}
}
