package sharepoint

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// batchEndpoint is the OData $batch submission endpoint.
const batchEndpoint = "_api/$batch"

// batchEntry is one queued request inside a batch.
type batchEntry struct {
	method  string
	url     string // absolute
	body    []byte
	headers map[string]string
	result  any
	err     error
}

// Batch collects requests from batched references and submits them as a
// single OData $batch call. GET requests travel as individual parts; writes
// are grouped into changesets, which the server applies atomically.
//
// A batch is single-use: after Execute it refuses further requests.
type Batch struct {
	http *httpClient

	mu       sync.Mutex
	entries  []*batchEntry
	executed bool
}

// newBatch creates an empty batch bound to the client's transport.
func newBatch(h *httpClient) *Batch {
	return &Batch{http: h}
}

// Len returns the number of queued requests.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// add queues a request. Called by verbs on batched references.
func (b *Batch) add(method, u string, query url.Values, body any, headers map[string]string, result any) error {
	full := b.http.resolveURL(u)
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("sharepoint: failed to marshal batched request body: %w", err)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.executed {
		return ErrBatchExecuted
	}
	b.entries = append(b.entries, &batchEntry{
		method:  method,
		url:     full,
		body:    bodyBytes,
		headers: headers,
		result:  result,
	})
	return nil
}

// Execute submits the batch and fills every queued result pointer. It
// returns ErrEmptyBatch when nothing was queued and ErrBatchExecuted on
// reuse. Per-request failures are joined into the returned error; Errs
// exposes them positionally.
func (b *Batch) Execute(ctx context.Context) error {
	b.mu.Lock()
	if b.executed {
		b.mu.Unlock()
		return ErrBatchExecuted
	}
	b.executed = true
	entries := b.entries
	b.mu.Unlock()

	if len(entries) == 0 {
		return ErrEmptyBatch
	}

	boundary := "batch_" + uuid.NewString()
	payload := buildBatchPayload(entries, boundary)

	respBody, contentType, err := b.http.postMultipart(ctx, batchEndpoint, "multipart/mixed; boundary="+boundary, payload)
	if err != nil {
		return err
	}

	responses, err := parseBatchResponse(respBody, contentType)
	if err != nil {
		return err
	}
	if len(responses) != len(entries) {
		return fmt.Errorf("sharepoint: $batch returned %d responses for %d requests", len(responses), len(entries))
	}

	var errs []error
	for i, part := range responses {
		entry := entries[i]
		entry.err = applyBatchPart(part, entry)
		if entry.err != nil {
			errs = append(errs, fmt.Errorf("sharepoint: batched request %d (%s %s): %w", i, entry.method, entry.url, entry.err))
		}
	}
	return errors.Join(errs...)
}

// Errs returns the per-request errors in queue order. All entries are nil
// when the batch succeeded. Valid only after Execute.
func (b *Batch) Errs() []error {
	b.mu.Lock()
	defer b.mu.Unlock()
	errs := make([]error, len(b.entries))
	for i, e := range b.entries {
		errs[i] = e.err
	}
	return errs
}

// buildBatchPayload renders the multipart/mixed request body. Consecutive
// writes share one changeset part.
func buildBatchPayload(entries []*batchEntry, boundary string) []byte {
	var sb strings.Builder

	i := 0
	for i < len(entries) {
		e := entries[i]
		if e.method == http.MethodGet {
			sb.WriteString("--" + boundary + "\r\n")
			sb.WriteString("Content-Type: application/http\r\n")
			sb.WriteString("Content-Transfer-Encoding: binary\r\n\r\n")
			writeBatchRequest(&sb, e)
			i++
			continue
		}

		// Group the run of consecutive writes into a changeset.
		changeset := "changeset_" + uuid.NewString()
		sb.WriteString("--" + boundary + "\r\n")
		sb.WriteString("Content-Type: multipart/mixed; boundary=" + changeset + "\r\n\r\n")
		for i < len(entries) && entries[i].method != http.MethodGet {
			sb.WriteString("--" + changeset + "\r\n")
			sb.WriteString("Content-Type: application/http\r\n")
			sb.WriteString("Content-Transfer-Encoding: binary\r\n\r\n")
			writeBatchRequest(&sb, entries[i])
			i++
		}
		sb.WriteString("--" + changeset + "--\r\n")
	}
	sb.WriteString("--" + boundary + "--\r\n")

	return []byte(sb.String())
}

// writeBatchRequest renders one embedded HTTP request.
func writeBatchRequest(sb *strings.Builder, e *batchEntry) {
	sb.WriteString(e.method + " " + e.url + " HTTP/1.1\r\n")
	sb.WriteString("Accept: application/json;odata=verbose\r\n")
	if e.body != nil {
		sb.WriteString("Content-Type: application/json;odata=verbose;charset=utf-8\r\n")
	}
	for k, v := range e.headers {
		sb.WriteString(k + ": " + v + "\r\n")
	}
	sb.WriteString("\r\n")
	if e.body != nil {
		sb.Write(e.body)
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
}

// batchPart is one parsed embedded HTTP response.
type batchPart struct {
	status int
	header http.Header
	body   []byte
}

// parseBatchResponse walks the multipart/mixed response, flattening nested
// changeset multiparts, and returns the embedded responses in order.
func parseBatchResponse(body []byte, contentType string) ([]batchPart, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("sharepoint: invalid $batch response content type: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("sharepoint: unexpected $batch response content type %q", mediaType)
	}

	return collectBatchParts(multipart.NewReader(bytes.NewReader(body), params["boundary"]))
}

func collectBatchParts(reader *multipart.Reader) ([]batchPart, error) {
	var parts []batchPart

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return parts, nil
		}
		if err != nil {
			return nil, fmt.Errorf("sharepoint: failed to read $batch response part: %w", err)
		}

		partType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err == nil && strings.HasPrefix(partType, "multipart/") {
			nested, err := collectBatchParts(multipart.NewReader(part, params["boundary"]))
			if err != nil {
				return nil, err
			}
			parts = append(parts, nested...)
			continue
		}

		resp, err := http.ReadResponse(bufio.NewReader(part), nil)
		if err != nil {
			return nil, fmt.Errorf("sharepoint: failed to parse embedded response: %w", err)
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("sharepoint: failed to read embedded response body: %w", err)
		}

		parts = append(parts, batchPart{
			status: resp.StatusCode,
			header: resp.Header,
			body:   respBody,
		})
	}
}

// applyBatchPart turns one embedded response into the entry's result or
// error.
func applyBatchPart(part batchPart, entry *batchEntry) error {
	if part.status >= 400 {
		apiErr := &APIError{
			StatusCode:    part.status,
			CorrelationID: part.header.Get("SPRequestGuid"),
		}
		apiErr.parseODataError(part.body)
		return apiErr
	}

	if entry.result != nil && len(part.body) > 0 {
		payload := unwrapODataBody(part.body)
		if err := json.Unmarshal(payload, entry.result); err != nil {
			return fmt.Errorf("failed to unmarshal batched response: %w", err)
		}
	}
	return nil
}
