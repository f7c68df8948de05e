package sharepoint

import "context"

// SiteUser is a thin reference to a single site user. It exists to give
// operations like Web.EnsureUser a typed result; the full user collection
// API lives outside this module.
type SiteUser struct {
	q Queryable
}

// newSiteUser builds a SiteUser from an entity URL returned by the server.
func newSiteUser(h *httpClient, entityURL string) *SiteUser {
	return &SiteUser{q: newQueryable(h, entityURL)}
}

// URL returns the accumulated resource URL of this reference.
func (u *SiteUser) URL() string {
	return u.q.URL()
}

// Select limits the fields returned when reading the user.
func (u *SiteUser) Select(fields ...string) *SiteUser {
	return &SiteUser{q: u.q.Select(fields...)}
}

// InBatch returns a reference whose read verbs enqueue into b.
func (u *SiteUser) InBatch(b *Batch) *SiteUser {
	return &SiteUser{q: u.q.inBatch(b)}
}

// Get reads the user.
func (u *SiteUser) Get(ctx context.Context) (*UserInfo, error) {
	result := &UserInfo{}
	if err := u.q.get(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}
