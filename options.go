package sharepoint

import (
	"net/http"
	"time"
)

// ConfigOption configures the client.
type ConfigOption func(*Config)

// WithAccessToken sets a bearer token attached to every request.
func WithAccessToken(token string) ConfigOption {
	return func(c *Config) {
		c.AccessToken = token
	}
}

// WithAuth sets a custom authentication provider, overriding WithAccessToken.
func WithAuth(auth AuthProvider) ConfigOption {
	return func(c *Config) {
		c.Auth = auth
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retry attempts. Zero falls back
// to DefaultMaxRetries; pass a negative value to disable retries.
func WithMaxRetries(maxRetries int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

// WithRetryDelay sets the initial delay between retry attempts.
func WithRetryDelay(delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) ConfigOption {
	return func(c *Config) {
		c.Debug = debug
	}
}

// WithLogger sets the structured logger used by the client.
func WithLogger(logger StructuredLogger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHTTPHooks registers hooks invoked around every HTTP request.
func WithHTTPHooks(hooks ...HTTPHook) ConfigOption {
	return func(c *Config) {
		c.Hooks = append(c.Hooks, hooks...)
	}
}

// WithMaxIdleConns tunes the default HTTP client's connection pool.
func WithMaxIdleConns(n int) ConfigOption {
	return func(c *Config) {
		c.MaxIdleConns = n
	}
}

// WithMaxIdleConnsPerHost tunes the default HTTP client's per-host pool.
func WithMaxIdleConnsPerHost(n int) ConfigOption {
	return func(c *Config) {
		c.MaxIdleConnsPerHost = n
	}
}

// WithIdleConnTimeout tunes how long idle connections are kept open.
func WithIdleConnTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.IdleConnTimeout = d
	}
}
