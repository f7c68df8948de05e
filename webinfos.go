package sharepoint

import "context"

// WebInfos is a read-only reference to the subweb information collection of
// a web. Unlike Webs it returns lightweight records without materializing
// each subweb.
type WebInfos struct {
	q Queryable
}

// URL returns the accumulated resource URL of this collection.
func (w *WebInfos) URL() string {
	return w.q.URL()
}

// Select limits the fields returned when reading the collection.
func (w *WebInfos) Select(fields ...string) *WebInfos {
	return &WebInfos{q: w.q.Select(fields...)}
}

// Filter applies an OData $filter expression to the collection.
func (w *WebInfos) Filter(expr string) *WebInfos {
	return &WebInfos{q: w.q.Filter(expr)}
}

// Top limits the number of records returned.
func (w *WebInfos) Top(n int) *WebInfos {
	return &WebInfos{q: w.q.Top(n)}
}

// OrderBy sorts the returned collection.
func (w *WebInfos) OrderBy(field string, ascending bool) *WebInfos {
	return &WebInfos{q: w.q.OrderBy(field, ascending)}
}

// InBatch returns a reference whose read verbs enqueue into b.
func (w *WebInfos) InBatch(b *Batch) *WebInfos {
	return &WebInfos{q: w.q.inBatch(b)}
}

// Get reads the collection. On a batched reference the returned slice
// pointer is populated when the batch executes.
func (w *WebInfos) Get(ctx context.Context) (*[]WebInfo, error) {
	result := &[]WebInfo{}
	if err := w.q.get(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}
