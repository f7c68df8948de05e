package sharepoint

import (
	"context"
	"encoding/json"
	"strings"
)

// Webs is a reference to the collection of subwebs of a web.
type Webs struct {
	q Queryable
}

// URL returns the accumulated resource URL of this collection.
func (w *Webs) URL() string {
	return w.q.URL()
}

// Select limits the fields returned when reading the collection.
func (w *Webs) Select(fields ...string) *Webs {
	return &Webs{q: w.q.Select(fields...)}
}

// Filter applies an OData $filter expression to the collection.
func (w *Webs) Filter(expr string) *Webs {
	return &Webs{q: w.q.Filter(expr)}
}

// Top limits the number of webs returned.
func (w *Webs) Top(n int) *Webs {
	return &Webs{q: w.q.Top(n)}
}

// OrderBy sorts the returned collection.
func (w *Webs) OrderBy(field string, ascending bool) *Webs {
	return &Webs{q: w.q.OrderBy(field, ascending)}
}

// InBatch returns a reference whose read verbs enqueue into b.
func (w *Webs) InBatch(b *Batch) *Webs {
	return &Webs{q: w.q.inBatch(b)}
}

// Get reads the collection. On a batched reference the returned slice
// pointer is populated when the batch executes.
func (w *Webs) Get(ctx context.Context) (*[]WebInfo, error) {
	result := &[]WebInfo{}
	if err := w.q.get(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// WebAddResult is returned by Webs.Add: the raw server payload plus a typed
// reference to the created web.
type WebAddResult struct {
	Data json.RawMessage
	Web  *Web
}

// webCreationParameters is the SP.WebCreationInformation body for Webs.Add.
type webCreationParameters struct {
	Metadata                       metadata `json:"__metadata"`
	Title                          string   `json:"Title"`
	URL                            string   `json:"Url"`
	Description                    string   `json:"Description"`
	WebTemplate                    string   `json:"WebTemplate"`
	Language                       int      `json:"Language"`
	UseSamePermissionsAsParentSite bool     `json:"UseSamePermissionsAsParentSite"`
}

// Add creates a new subweb. The title and relative url are required; info
// carries the remaining creation parameters, with zero values falling back
// to the "STS" template, language 1033 and unique permissions. Add cannot
// join a batch because the created web's reference is derived from the
// response.
func (w *Webs) Add(ctx context.Context, title, webURL string, info *WebCreateInfo) (*WebAddResult, error) {
	if w.q.batch != nil {
		return nil, ErrNotBatchable
	}

	if info == nil {
		info = &WebCreateInfo{}
	}
	template := info.Template
	if template == "" {
		template = "STS"
	}
	language := info.Language
	if language == 0 {
		language = 1033
	}

	body := map[string]any{
		"parameters": webCreationParameters{
			Metadata:                       metadataType("SP.WebCreationInformation"),
			Title:                          title,
			URL:                            webURL,
			Description:                    info.Description,
			WebTemplate:                    template,
			Language:                       language,
			UseSamePermissionsAsParentSite: info.InheritPermissions,
		},
	}

	var data json.RawMessage
	if err := w.q.child("add").postCore(ctx, body, nil, &data); err != nil {
		return nil, err
	}

	// The created web's base URL is the entity URL minus the API segment;
	// building a Web from it re-appends "_api/web". The server capitalizes
	// the segment ("_api/Web"), so match case-insensitively.
	base := odataURLFrom(data)
	if idx := strings.Index(strings.ToLower(base), "/_api/web"); idx >= 0 {
		base = base[:idx]
	}
	return &WebAddResult{
		Data: data,
		Web:  newWeb(w.q.http, strings.TrimSuffix(base, "/")),
	}, nil
}
