package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AuthProvider attaches authentication to outgoing requests. The full
// SharePoint authentication flows (NTLM, SAML, add-in) live outside this
// module; any of them can be plugged in through this seam.
type AuthProvider interface {
	// Apply mutates the request to carry credentials.
	Apply(req *http.Request) error
}

// bearerAuth attaches a static OAuth bearer token.
type bearerAuth struct {
	token string
}

// BearerAuth returns an AuthProvider that sets "Authorization: Bearer <token>".
func BearerAuth(token string) AuthProvider {
	return &bearerAuth{token: token}
}

func (a *bearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.token)
	return nil
}

// httpClient handles HTTP requests against the SharePoint REST API.
type httpClient struct {
	client     *http.Client
	siteURL    string
	auth       AuthProvider
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	debug      bool
	logger     StructuredLogger
	hooks      []HTTPHook
	digest     *digestCache
}

// newHTTPClient creates a new HTTP client from a validated config.
func newHTTPClient(cfg *Config) *httpClient {
	h := &httpClient{
		client:     cfg.HTTPClient,
		siteURL:    strings.TrimSuffix(cfg.SiteURL, "/"),
		auth:       cfg.Auth,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		debug:      cfg.Debug,
		logger:     cfg.Logger,
		hooks:      cfg.Hooks,
	}
	h.digest = newDigestCache(h)
	return h
}

// request represents an HTTP request to be made.
type request struct {
	method  string
	url     string // absolute, or relative to the site URL
	query   url.Values
	body    any
	headers map[string]string
	result  any
}

// resolveURL turns a resource URL into an absolute one.
func (h *httpClient) resolveURL(u string) string {
	if strings.Contains(u, "://") {
		return u
	}
	return h.siteURL + "/" + strings.TrimPrefix(u, "/")
}

// do executes an HTTP request with retries. Throttling responses (429/503),
// server errors and network failures are retried with exponential backoff,
// honoring Retry-After when the server sends one. The body is marshaled
// once, up front, so a bad body fails immediately instead of burning the
// backoff schedule.
func (h *httpClient) do(ctx context.Context, req *request) error {
	var bodyBytes []byte
	if req.body != nil {
		var err error
		bodyBytes, err = json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("sharepoint: failed to marshal request body: %w", err)
		}
	}

	var lastErr error

	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if attempt > 0 {
			delay := h.retryDelay * time.Duration(1<<uint(attempt-1))
			if ra := RetryAfter(lastErr); ra > delay {
				delay = ra
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := h.doOnce(ctx, req, bodyBytes)
		if err == nil {
			return nil
		}

		lastErr = err

		if apiErr, ok := AsAPIError(err); ok {
			if !apiErr.IsRetryable() {
				return err
			}
		} else if ctx.Err() != nil {
			return err
		}
		// Network errors are retryable.
	}

	return lastErr
}

// doOnce executes a single HTTP request carrying the pre-marshaled body.
func (h *httpClient) doOnce(ctx context.Context, req *request, bodyBytes []byte) error {
	u := h.resolveURL(req.url)
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if bodyBytes != nil {
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("sharepoint: failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json;odata=verbose")
	if bodyBytes != nil {
		httpReq.Header.Set("Content-Type", "application/json;odata=verbose;charset=utf-8")
	}
	httpReq.Header.Set("User-Agent", h.userAgent)
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	if h.auth != nil {
		if err := h.auth.Apply(httpReq); err != nil {
			return fmt.Errorf("sharepoint: auth provider failed: %w", err)
		}
	}

	// Writes against the API need a form digest; GETs and the contextinfo
	// call itself do not.
	if h.needsDigest(httpReq) {
		digest, err := h.digest.Get(ctx)
		if err != nil {
			return err
		}
		httpReq.Header.Set("X-RequestDigest", digest)
	}

	for _, hook := range h.hooks {
		if err := hook.BeforeRequest(ctx, httpReq); err != nil {
			return fmt.Errorf("sharepoint: hook aborted request: %w", err)
		}
	}

	if h.debug {
		h.logger.Debug("sending request", "method", httpReq.Method, "url", u)
	}

	start := time.Now()
	resp, err := h.client.Do(httpReq)
	duration := time.Since(start)

	for _, hook := range h.hooks {
		hook.AfterResponse(ctx, httpReq, resp, duration, err)
	}

	if err != nil {
		return fmt.Errorf("sharepoint: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sharepoint: failed to read response body: %w", err)
	}

	if h.debug {
		h.logger.Debug("received response", "status", resp.StatusCode, "duration", duration)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode:    resp.StatusCode,
			CorrelationID: resp.Header.Get("SPRequestGuid"),
			RetryAfter:    parseRetryAfter(resp.Header.Get("Retry-After")),
		}
		apiErr.parseODataError(respBody)
		return apiErr
	}

	if req.result != nil && len(respBody) > 0 {
		payload := unwrapODataBody(respBody)
		if err := json.Unmarshal(payload, req.result); err != nil {
			return fmt.Errorf("sharepoint: failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// needsDigest reports whether the request must carry an X-RequestDigest
// header. The caller may pre-set the header, e.g. from a cached value.
func (h *httpClient) needsDigest(req *http.Request) bool {
	if req.Method == http.MethodGet {
		return false
	}
	if req.Header.Get("X-RequestDigest") != "" {
		return false
	}
	if strings.HasSuffix(strings.ToLower(req.URL.Path), "/_api/contextinfo") {
		return false
	}
	return strings.Contains(strings.ToLower(req.URL.Path), "/_api/")
}

// parseRetryAfter parses a Retry-After header value, either the delta-seconds
// or the HTTP-date form.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// postMultipart performs a single POST carrying a prebuilt multipart body.
// It shares auth, digest and hook handling with doOnce but skips retries:
// replaying a half-applied $batch is the caller's decision. It returns the
// response body and its Content-Type.
func (h *httpClient) postMultipart(ctx context.Context, u, contentType string, body []byte) ([]byte, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.resolveURL(u), bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("sharepoint: failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json;odata=verbose")
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("User-Agent", h.userAgent)

	if h.auth != nil {
		if err := h.auth.Apply(httpReq); err != nil {
			return nil, "", fmt.Errorf("sharepoint: auth provider failed: %w", err)
		}
	}

	if h.needsDigest(httpReq) {
		digest, err := h.digest.Get(ctx)
		if err != nil {
			return nil, "", err
		}
		httpReq.Header.Set("X-RequestDigest", digest)
	}

	for _, hook := range h.hooks {
		if err := hook.BeforeRequest(ctx, httpReq); err != nil {
			return nil, "", fmt.Errorf("sharepoint: hook aborted request: %w", err)
		}
	}

	start := time.Now()
	resp, err := h.client.Do(httpReq)
	duration := time.Since(start)

	for _, hook := range h.hooks {
		hook.AfterResponse(ctx, httpReq, resp, duration, err)
	}

	if err != nil {
		return nil, "", fmt.Errorf("sharepoint: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("sharepoint: failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode:    resp.StatusCode,
			CorrelationID: resp.Header.Get("SPRequestGuid"),
			RetryAfter:    parseRetryAfter(resp.Header.Get("Retry-After")),
		}
		apiErr.parseODataError(respBody)
		return nil, "", apiErr
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}

// get performs a GET request.
func (h *httpClient) get(ctx context.Context, u string, query url.Values, result any) error {
	return h.do(ctx, &request{
		method: http.MethodGet,
		url:    u,
		query:  query,
		result: result,
	})
}

// post performs a POST request with optional extra headers.
func (h *httpClient) post(ctx context.Context, u string, query url.Values, body any, headers map[string]string, result any) error {
	return h.do(ctx, &request{
		method:  http.MethodPost,
		url:     u,
		query:   query,
		body:    body,
		headers: headers,
		result:  result,
	})
}
