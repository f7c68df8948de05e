package sharepoint

import "context"

// List is a thin reference to a single list. It exists to give operations
// like Web.GetCatalog a typed result; the full list API lives outside this
// module.
type List struct {
	q Queryable
}

// newList builds a List from an entity URL returned by the server.
func newList(h *httpClient, entityURL string) *List {
	return &List{q: newQueryable(h, entityURL)}
}

// URL returns the accumulated resource URL of this reference.
func (l *List) URL() string {
	return l.q.URL()
}

// Select limits the fields returned when reading the list.
func (l *List) Select(fields ...string) *List {
	return &List{q: l.q.Select(fields...)}
}

// InBatch returns a reference whose read verbs enqueue into b.
func (l *List) InBatch(b *Batch) *List {
	return &List{q: l.q.inBatch(b)}
}

// Get reads the list.
func (l *List) Get(ctx context.Context) (*ListInfo, error) {
	result := &ListInfo{}
	if err := l.q.get(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}
