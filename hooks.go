package sharepoint

import (
	"context"
	"net/http"
	"time"
)

// HTTPHook allows customizing HTTP request/response handling.
// Hooks are called in registration order during request processing.
//
// Use hooks for:
//   - Adding custom headers to all requests
//   - Logging request/response details
//   - Collecting custom metrics
type HTTPHook interface {
	// BeforeRequest is called before sending the HTTP request.
	// It can modify the request and return an error to abort.
	BeforeRequest(ctx context.Context, req *http.Request) error

	// AfterResponse is called after receiving the HTTP response.
	// It receives the response, duration, and any error from the request.
	AfterResponse(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error)
}

// HookFuncs adapts plain functions to the HTTPHook interface.
// Either field may be nil.
type HookFuncs struct {
	Before func(ctx context.Context, req *http.Request) error
	After  func(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error)
}

func (h HookFuncs) BeforeRequest(ctx context.Context, req *http.Request) error {
	if h.Before == nil {
		return nil
	}
	return h.Before(ctx, req)
}

func (h HookFuncs) AfterResponse(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error) {
	if h.After != nil {
		h.After(ctx, req, resp, duration, err)
	}
}

// LoggingHook returns a hook that logs every request and response through
// the given logger at debug level.
func LoggingHook(logger StructuredLogger) HTTPHook {
	return HookFuncs{
		After: func(ctx context.Context, req *http.Request, resp *http.Response, duration time.Duration, err error) {
			if err != nil {
				logger.Error("request failed",
					"method", req.Method,
					"url", req.URL.String(),
					"duration", duration,
					"error", err,
				)
				return
			}
			logger.Debug("request completed",
				"method", req.Method,
				"url", req.URL.String(),
				"status", resp.StatusCode,
				"duration", duration,
			)
		},
	}
}

// HeaderHook returns a hook that sets a fixed header on every request.
func HeaderHook(key, value string) HTTPHook {
	return HookFuncs{
		Before: func(ctx context.Context, req *http.Request) error {
			req.Header.Set(key, value)
			return nil
		},
	}
}

var _ HTTPHook = HookFuncs{}
