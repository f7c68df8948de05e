package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Queryable is an immutable reference to a remote resource: a URL accumulated
// from its parent, an optional OData query string, and an optional batch
// context. Chained accessors derive new references; no network I/O happens
// until a terminal verb executes.
type Queryable struct {
	http  *httpClient
	url   string
	query url.Values
	batch *Batch
}

func newQueryable(h *httpClient, u string) Queryable {
	return Queryable{http: h, url: u}
}

// URL returns the accumulated resource URL, without the query string.
func (q Queryable) URL() string {
	return q.url
}

// Query returns a copy of the accumulated OData query parameters.
func (q Queryable) Query() url.Values {
	return cloneValues(q.query)
}

// RequestURL returns the resource URL with the encoded query string appended.
func (q Queryable) RequestURL() string {
	if len(q.query) == 0 {
		return q.url
	}
	return q.url + "?" + q.query.Encode()
}

// child derives a reference one path segment deeper.
func (q Queryable) child(segment string) Queryable {
	c := q
	c.url = joinPath(q.url, segment)
	c.query = cloneValues(q.query)
	return c
}

// childf derives a reference using OData function-call syntax, e.g.
// childf("getcatalog(%d)", 111).
func (q Queryable) childf(format string, args ...any) Queryable {
	return q.child(fmt.Sprintf(format, args...))
}

// withParam derives a reference with one query parameter set.
func (q Queryable) withParam(key, value string) Queryable {
	c := q
	c.url = q.url
	c.query = cloneValues(q.query)
	if c.query == nil {
		c.query = url.Values{}
	}
	c.query.Set(key, value)
	return c
}

// Select limits the fields returned by the server.
func (q Queryable) Select(fields ...string) Queryable {
	return q.withParam("$select", strings.Join(fields, ","))
}

// Expand includes the given navigation properties in the response.
func (q Queryable) Expand(fields ...string) Queryable {
	return q.withParam("$expand", strings.Join(fields, ","))
}

// Filter applies an OData $filter expression.
func (q Queryable) Filter(expr string) Queryable {
	return q.withParam("$filter", expr)
}

// Top limits the number of items returned.
func (q Queryable) Top(n int) Queryable {
	return q.withParam("$top", strconv.Itoa(n))
}

// Skip skips the first n items of a collection.
func (q Queryable) Skip(n int) Queryable {
	return q.withParam("$skip", strconv.Itoa(n))
}

// OrderBy sorts the returned collection. Set ascending to false for
// descending order.
func (q Queryable) OrderBy(field string, ascending bool) Queryable {
	dir := "asc"
	if !ascending {
		dir = "desc"
	}
	return q.withParam("$orderby", field+" "+dir)
}

// inBatch derives a reference whose verbs enqueue into b instead of sending.
func (q Queryable) inBatch(b *Batch) Queryable {
	c := q
	c.batch = b
	return c
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	c := make(url.Values, len(v))
	for k, vals := range v {
		c[k] = append([]string(nil), vals...)
	}
	return c
}

// get is the terminal GET verb.
func (q Queryable) get(ctx context.Context, result any) error {
	if q.batch != nil {
		return q.batch.add(http.MethodGet, q.url, q.query, nil, nil, result)
	}
	return q.http.get(ctx, q.url, q.query, result)
}

// postCore is the terminal POST verb.
func (q Queryable) postCore(ctx context.Context, body any, headers map[string]string, result any) error {
	if q.batch != nil {
		return q.batch.add(http.MethodPost, q.url, q.query, body, headers, result)
	}
	return q.http.post(ctx, q.url, q.query, body, headers, result)
}

// mergeCore is postCore with the MERGE method-override header, used for
// partial updates.
func (q Queryable) mergeCore(ctx context.Context, body any, result any) error {
	return q.postCore(ctx, body, map[string]string{"X-HTTP-Method": "MERGE"}, result)
}

// deleteCore is the terminal DELETE verb, expressed as a method-override POST
// the way the REST API expects.
func (q Queryable) deleteCore(ctx context.Context) error {
	return q.postCore(ctx, nil, map[string]string{"X-HTTP-Method": "DELETE"}, nil)
}
