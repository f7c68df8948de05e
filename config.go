package sharepoint

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retry attempts.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default initial delay between retry attempts.
	// The delay doubles with each attempt.
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 100

	// DefaultMaxIdleConnsPerHost is the default maximum idle connections per host.
	DefaultMaxIdleConnsPerHost = 10

	// DefaultIdleConnTimeout is the default timeout for idle connections.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultUserAgent identifies the client on the wire.
	DefaultUserAgent = "sharepoint-go/1.0.0"

	// MaxMaxRetries is the maximum allowed retry count.
	MaxMaxRetries = 10

	// MaxTimeout is the maximum allowed request timeout.
	MaxTimeout = 10 * time.Minute
)

// Config holds client configuration.
//
// SiteURL is the absolute URL of the SharePoint site the client is bound to,
// e.g. "https://contoso.sharepoint.com/sites/dev". All resource paths are
// resolved against it.
type Config struct {
	// SiteURL is the absolute site URL. Required.
	SiteURL string

	// AccessToken is a bearer token attached to every request. Optional if
	// Auth is set or the transport handles authentication itself.
	AccessToken string

	// Auth overrides AccessToken with a custom authentication provider.
	Auth AuthProvider

	// Timeout is the per-request timeout. Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts for retryable failures.
	// Zero means DefaultMaxRetries; a negative value disables retries.
	MaxRetries int

	// RetryDelay is the initial backoff delay; it doubles per attempt.
	RetryDelay time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables request/response logging through Logger.
	Debug bool

	// HTTPClient lets callers supply their own *http.Client.
	HTTPClient *http.Client

	// Logger receives structured client logs. Defaults to NopLogger.
	Logger StructuredLogger

	// Hooks are invoked around every HTTP request.
	Hooks []HTTPHook

	// Connection pool tuning for the default HTTP client.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// applyDefaults sets default values for unset configuration options.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	} else if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if c.Auth == nil && c.AccessToken != "" {
		c.Auth = BearerAuth(c.AccessToken)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        c.MaxIdleConns,
				MaxIdleConnsPerHost: c.MaxIdleConnsPerHost,
				IdleConnTimeout:     c.IdleConnTimeout,
			},
		}
	}
}

// validate checks the configuration for errors.
func (c *Config) validate() error {
	if c.SiteURL == "" {
		return ErrMissingSiteURL
	}

	u, err := url.Parse(c.SiteURL)
	if err != nil {
		return fmt.Errorf("sharepoint: invalid site URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return ErrInvalidSiteURL
	}

	if c.MaxRetries > MaxMaxRetries {
		return fmt.Errorf("sharepoint: max retries cannot exceed %d, got %d", MaxMaxRetries, c.MaxRetries)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("sharepoint: timeout cannot be negative, got %v", c.Timeout)
	}
	if c.Timeout > MaxTimeout {
		return fmt.Errorf("sharepoint: timeout cannot exceed %v, got %v", MaxTimeout, c.Timeout)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("sharepoint: retry delay cannot be negative, got %v", c.RetryDelay)
	}

	return nil
}

// fileConfig is the YAML schema for LoadConfigFile. Durations are plain
// strings ("45s", "2m") parsed with time.ParseDuration.
type fileConfig struct {
	SiteURL     string `yaml:"site_url"`
	AccessToken string `yaml:"access_token"`
	Timeout     string `yaml:"timeout"`
	MaxRetries  int    `yaml:"max_retries"`
	RetryDelay  string `yaml:"retry_delay"`
	UserAgent   string `yaml:"user_agent"`
	Debug       bool   `yaml:"debug"`
}

// LoadConfigFile reads a YAML configuration file into a Config. Values like
// "${SHAREPOINT_ACCESS_TOKEN}" in the access_token field are expanded from
// the environment.
//
// Example file:
//
//	site_url: https://contoso.sharepoint.com/sites/dev
//	access_token: ${SHAREPOINT_ACCESS_TOKEN}
//	timeout: 45s
//	max_retries: 5
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sharepoint: failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("sharepoint: failed to parse config file: %w", err)
	}

	cfg := &Config{
		SiteURL:     expandEnv(fc.SiteURL),
		AccessToken: expandEnv(fc.AccessToken),
		MaxRetries:  fc.MaxRetries,
		UserAgent:   fc.UserAgent,
		Debug:       fc.Debug,
	}

	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("sharepoint: invalid timeout in config file: %w", err)
		}
		cfg.Timeout = d
	}
	if fc.RetryDelay != "" {
		d, err := time.ParseDuration(fc.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("sharepoint: invalid retry_delay in config file: %w", err)
		}
		cfg.RetryDelay = d
	}

	return cfg, nil
}

// expandEnv expands ${VAR} references from the environment, leaving other
// values untouched.
func expandEnv(v string) string {
	if !strings.Contains(v, "${") {
		return v
	}
	return os.Expand(v, os.Getenv)
}
