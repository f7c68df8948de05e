package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// webAPIPath is the default API segment a Web reference appends to its base.
const webAPIPath = "_api/web"

// Web is a reference to a single web (site) in the remote hierarchy.
type Web struct {
	q Queryable
}

// newWeb builds a Web rooted at the given base URL, appending the default
// "_api/web" segment.
func newWeb(h *httpClient, base string) *Web {
	return &Web{q: newQueryable(h, joinPath(base, webAPIPath))}
}

// WebFromURL locates the API root inside an arbitrary URL (a page URL, an
// entity URL, ...) by searching for the "_api/" marker, and returns a Web
// bound to it. When path segments are given they replace the default
// "_api/web" segment.
func WebFromURL(c *Client, candidate string, path ...string) *Web {
	base := candidate
	if idx := strings.Index(strings.ToLower(candidate), "/_api/"); idx >= 0 {
		base = candidate[:idx]
	}
	base = strings.TrimSuffix(base, "/")

	if len(path) > 0 {
		q := newQueryable(c.http, base)
		for _, p := range path {
			q = q.child(p)
		}
		return &Web{q: q}
	}
	return newWeb(c.http, base)
}

// URL returns the accumulated resource URL of this reference.
func (w *Web) URL() string {
	return w.q.URL()
}

// Select limits the fields returned when reading the web.
func (w *Web) Select(fields ...string) *Web {
	return &Web{q: w.q.Select(fields...)}
}

// Expand includes the given navigation properties in the response.
func (w *Web) Expand(fields ...string) *Web {
	return &Web{q: w.q.Expand(fields...)}
}

// InBatch returns a reference whose verbs enqueue into b. Operations that
// must shape their result from the response synchronously (EnsureUser,
// GetCatalog, GetChanges, GetStorageEntity, MapToIcon) refuse to run on a
// batched reference and return ErrNotBatchable.
func (w *Web) InBatch(b *Batch) *Web {
	return &Web{q: w.q.inBatch(b)}
}

// Webs returns a reference to this web's subweb collection.
func (w *Web) Webs() *Webs {
	return &Webs{q: w.q.child("webs")}
}

// WebInfos returns a reference to this web's subweb information collection.
func (w *Web) WebInfos() *WebInfos {
	return &WebInfos{q: w.q.child("webinfos")}
}

// Get reads the web. On a batched reference the returned pointer is
// populated when the batch executes.
func (w *Web) Get(ctx context.Context) (*WebInfo, error) {
	result := &WebInfo{}
	if err := w.q.get(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// WebUpdateResult is returned by Web.Update: the raw server payload plus the
// reference the update was issued against.
type WebUpdateResult struct {
	Data json.RawMessage
	Web  *Web
}

// Update applies a partial update to the web's properties. Property names
// follow the server schema ("Title", "Description", ...). The request is a
// MERGE method-override POST carrying an SP.Web-typed body. On a batched
// reference the result's Data is populated when the batch executes.
func (w *Web) Update(ctx context.Context, props map[string]any) (*WebUpdateResult, error) {
	result := &WebUpdateResult{Web: w}
	if err := w.q.mergeCore(ctx, typedBody("SP.Web", props), &result.Data); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete deletes the web. No payload is returned.
func (w *Web) Delete(ctx context.Context) error {
	return w.q.deleteCore(ctx)
}

// WebEnsureUserResult is returned by Web.EnsureUser: the resolved user plus
// a typed reference to it, derived from the response's entity URL.
type WebEnsureUserResult struct {
	Data UserInfo
	User *SiteUser
}

// EnsureUser resolves a login name to a site user, adding the user to the
// site if necessary.
func (w *Web) EnsureUser(ctx context.Context, loginName string) (*WebEnsureUserResult, error) {
	if loginName == "" {
		return nil, ErrEmptyLoginName
	}
	if w.q.batch != nil {
		return nil, ErrNotBatchable
	}

	body := map[string]any{"logonName": loginName}

	var data json.RawMessage
	if err := w.q.child("ensureuser").postCore(ctx, body, nil, &data); err != nil {
		return nil, err
	}

	result := &WebEnsureUserResult{
		User: newSiteUser(w.q.http, odataURLFrom(data)),
	}
	if err := json.Unmarshal(data, &result.Data); err != nil {
		return nil, fmt.Errorf("sharepoint: failed to parse ensureuser response: %w", err)
	}
	return result, nil
}

// GetCatalogResult is returned by Web.GetCatalog: the raw payload plus a
// typed reference to the catalog list, built from the returned identifier.
type GetCatalogResult struct {
	Data json.RawMessage
	List *List
}

// GetCatalog returns the catalog list of the given type (e.g. 111 for the
// web template gallery). It issues a selecting GET against
// getcatalog(<type>) and builds the list reference from the entity URL the
// server returns, not from this reference's path.
func (w *Web) GetCatalog(ctx context.Context, catalogType int) (*GetCatalogResult, error) {
	if w.q.batch != nil {
		return nil, ErrNotBatchable
	}

	var data json.RawMessage
	if err := w.q.childf("getcatalog(%d)", catalogType).Select("Id").get(ctx, &data); err != nil {
		return nil, err
	}
	return &GetCatalogResult{
		Data: data,
		List: newList(w.q.http, odataURLFrom(data)),
	}, nil
}

// GetChanges reads the change log entries selected by the query. The raw
// payload is returned untouched.
func (w *Web) GetChanges(ctx context.Context, query *ChangeQuery) (json.RawMessage, error) {
	if w.q.batch != nil {
		return nil, ErrNotBatchable
	}

	qBody, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("sharepoint: failed to marshal change query: %w", err)
	}
	var props map[string]any
	if err := json.Unmarshal(qBody, &props); err != nil {
		return nil, fmt.Errorf("sharepoint: failed to marshal change query: %w", err)
	}

	body := map[string]any{"query": typedBody("SP.ChangeQuery", props)}

	var data json.RawMessage
	if err := w.q.child("getchanges").postCore(ctx, body, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetStorageEntity reads a storage entity by key.
func (w *Web) GetStorageEntity(ctx context.Context, key string) (*StorageEntity, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if w.q.batch != nil {
		return nil, ErrNotBatchable
	}
	var data json.RawMessage
	if err := w.q.childf("getStorageEntity('%s')", escapeQueryStr(key)).get(ctx, &data); err != nil {
		return nil, err
	}
	result := &StorageEntity{}
	if err := unmarshalFunctionResult(data, "GetStorageEntity", result); err != nil {
		return nil, fmt.Errorf("sharepoint: failed to parse storage entity: %w", err)
	}
	return result, nil
}

// SetStorageEntity creates or updates a storage entity.
func (w *Web) SetStorageEntity(ctx context.Context, key, value, description, comments string) error {
	if key == "" {
		return ErrEmptyKey
	}
	body := map[string]any{
		"key":         key,
		"value":       value,
		"description": description,
		"comments":    comments,
	}
	return w.q.child("setStorageEntity").postCore(ctx, body, nil, nil)
}

// RemoveStorageEntity deletes a storage entity by key.
func (w *Web) RemoveStorageEntity(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return w.q.childf("removeStorageEntity('%s')", escapeQueryStr(key)).postCore(ctx, nil, nil, nil)
}

// ApplyTheme applies a theme to the web. The parameters travel in the JSON
// body.
func (w *Web) ApplyTheme(ctx context.Context, theme ThemeInfo) error {
	body := map[string]any{
		"colorPaletteUrl":    theme.ColorPaletteURL,
		"fontSchemeUrl":      theme.FontSchemeURL,
		"backgroundImageUrl": theme.BackgroundImageURL,
		"shareGenerated":     theme.ShareGenerated,
	}
	return w.q.child("applytheme").postCore(ctx, body, nil, nil)
}

// ApplyWebTemplate applies a site template to the web. The template name
// travels as an aliased query parameter referenced from the function call.
func (w *Web) ApplyWebTemplate(ctx context.Context, template string) error {
	q := w.q.child("applywebtemplate(@t)").withParam("@t", "'"+escapeQueryStr(template)+"'")
	return q.postCore(ctx, nil, nil, nil)
}

// MapToIcon returns the name of the icon image mapped to the given file
// name. The arguments travel as inline function-call parameters.
func (w *Web) MapToIcon(ctx context.Context, fileName string, size int) (string, error) {
	if w.q.batch != nil {
		return "", ErrNotBatchable
	}
	var data json.RawMessage
	q := w.q.childf("maptoicon(filename='%s', progid='', size=%d)", escapeQueryStr(fileName), size)
	if err := q.get(ctx, &data); err != nil {
		return "", err
	}
	var result string
	if err := unmarshalFunctionResult(data, "MapToIcon", &result); err != nil {
		return "", fmt.Errorf("sharepoint: failed to parse maptoicon response: %w", err)
	}
	return result, nil
}
