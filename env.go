package sharepoint

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names for configuration.
const (
	// EnvSiteURL is the environment variable for the SharePoint site URL.
	EnvSiteURL = "SHAREPOINT_SITE_URL"
	// EnvAccessToken is the environment variable for the bearer token.
	EnvAccessToken = "SHAREPOINT_ACCESS_TOKEN"
	// EnvDebug is the environment variable to enable debug mode.
	EnvDebug = "SHAREPOINT_DEBUG"
)

// NewFromEnv creates a new client using environment variables for
// configuration. It reads SHAREPOINT_SITE_URL and optionally
// SHAREPOINT_ACCESS_TOKEN and SHAREPOINT_DEBUG.
//
// Example:
//
//	client, err := sharepoint.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromEnv(opts ...ConfigOption) (*Client, error) {
	siteURL := os.Getenv(EnvSiteURL)
	if siteURL == "" {
		return nil, fmt.Errorf("sharepoint: %s environment variable is required", EnvSiteURL)
	}

	// Prepend env var options so explicit options can override them
	envOpts := make([]ConfigOption, 0, 2)

	if token := os.Getenv(EnvAccessToken); token != "" {
		envOpts = append(envOpts, WithAccessToken(token))
	}

	if debug := os.Getenv(EnvDebug); debug != "" {
		if v, err := strconv.ParseBool(debug); err == nil {
			envOpts = append(envOpts, WithDebug(v))
		}
	}

	return New(siteURL, append(envOpts, opts...)...)
}
