package sharepoint

import "context"

// Client is the entry point into the API. It is bound to a single site and
// is safe for concurrent use; the references it hands out are independent
// immutable values.
type Client struct {
	config *Config
	http   *httpClient
}

// New creates a new client for the given site URL.
//
//	client, err := sharepoint.New(
//	    "https://contoso.sharepoint.com/sites/dev",
//	    sharepoint.WithAccessToken(token),
//	)
func New(siteURL string, opts ...ConfigOption) (*Client, error) {
	cfg := &Config{SiteURL: siteURL}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a new client from a Config struct. This is useful
// together with LoadConfigFile:
//
//	cfg, err := sharepoint.LoadConfigFile("sharepoint.yaml")
//	...
//	client, err := sharepoint.NewWithConfig(cfg)
func NewWithConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	// Copy so defaults never leak into the caller's struct.
	cfgCopy := *cfg
	cfgCopy.applyDefaults()

	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: &cfgCopy,
		http:   newHTTPClient(&cfgCopy),
	}, nil
}

// SiteURL returns the site URL the client is bound to.
func (c *Client) SiteURL() string {
	return c.http.siteURL
}

// Web returns a reference to the site's root web.
func (c *Client) Web() *Web {
	return newWeb(c.http, "")
}

// NewBatch returns an empty batch. Thread it through references with
// InBatch, then submit with Execute.
func (c *Client) NewBatch() *Batch {
	return newBatch(c.http)
}

// ContextInfo fetches the current form digest information from the server.
// The transport handles digests automatically for write requests; this is
// exposed for callers integrating with other tooling.
func (c *Client) ContextInfo(ctx context.Context) (string, error) {
	return c.http.digest.Get(ctx)
}
