package sharepoint

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// digestExpirySlack is subtracted from the server-reported digest lifetime so
// a digest is never used right at its expiration boundary.
const digestExpirySlack = 15 * time.Second

// digestCache caches the form digest obtained from _api/contextinfo. Write
// requests attach it as X-RequestDigest; the cache refreshes it on expiry.
// Concurrent callers share a single refresh.
type digestCache struct {
	http *httpClient

	mu      sync.Mutex
	value   string
	expires time.Time
}

func newDigestCache(h *httpClient) *digestCache {
	return &digestCache{http: h}
}

// contextWebInformation is the payload of a contextinfo call. The verbose
// response nests it under GetContextWebInformation.
type contextWebInformation struct {
	FormDigestValue          string `json:"FormDigestValue"`
	FormDigestTimeoutSeconds int    `json:"FormDigestTimeoutSeconds"`
	WebFullURL               string `json:"WebFullUrl"`
}

// Get returns a valid form digest, fetching a fresh one if needed.
func (d *digestCache) Get(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.value != "" && time.Now().Before(d.expires) {
		return d.value, nil
	}

	info, err := d.fetch(ctx)
	if err != nil {
		return "", err
	}

	d.value = info.FormDigestValue
	lifetime := time.Duration(info.FormDigestTimeoutSeconds)*time.Second - digestExpirySlack
	if lifetime < 0 {
		lifetime = 0
	}
	d.expires = time.Now().Add(lifetime)

	return d.value, nil
}

// Invalidate drops the cached digest, forcing a refresh on next use.
func (d *digestCache) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = ""
	d.expires = time.Time{}
}

func (d *digestCache) fetch(ctx context.Context) (*contextWebInformation, error) {
	var raw json.RawMessage
	err := d.http.post(ctx, "_api/contextinfo", nil, nil, nil, &raw)
	if err != nil {
		return nil, err
	}

	// Verbose responses nest the payload; minimal responses do not.
	var nested struct {
		Info *contextWebInformation `json:"GetContextWebInformation"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Info != nil && nested.Info.FormDigestValue != "" {
		return nested.Info, nil
	}

	var info contextWebInformation
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
