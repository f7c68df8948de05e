package sharepoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents a category of error for logging and metrics.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration errors
	ErrCodeValidation ErrorCode = "VALIDATION" // Request validation errors
	ErrCodeNetwork    ErrorCode = "NETWORK"    // Network/connection errors
	ErrCodeAPI        ErrorCode = "API"        // API response errors
	ErrCodeAuth       ErrorCode = "AUTH"       // Authentication/authorization errors
	ErrCodeThrottle   ErrorCode = "THROTTLE"   // Throttling (429/503) errors
	ErrCodeBatch      ErrorCode = "BATCH"      // $batch composition errors
)

// Sentinel errors for configuration and request validation.
var (
	ErrMissingSiteURL = errors.New("sharepoint: site URL is required")
	ErrInvalidSiteURL = errors.New("sharepoint: site URL must be absolute")
	ErrInvalidConfig  = errors.New("sharepoint: invalid configuration")
	ErrNilConfig      = errors.New("sharepoint: config cannot be nil")
	ErrEmptyKey       = errors.New("sharepoint: storage entity key cannot be empty")
	ErrEmptyLoginName = errors.New("sharepoint: login name cannot be empty")
)

// Batch-related sentinel errors.
var (
	ErrNotBatchable  = errors.New("sharepoint: operation cannot join a batch")
	ErrBatchExecuted = errors.New("sharepoint: batch has already been executed")
	ErrEmptyBatch    = errors.New("sharepoint: batch is empty")
)

// Sentinel APIError values for use with errors.Is().
// These match on status code only.
var (
	ErrUnauthorized = &APIError{StatusCode: 401}
	ErrForbidden    = &APIError{StatusCode: 403}
	ErrNotFound     = &APIError{StatusCode: 404}
	ErrThrottled    = &APIError{StatusCode: 429}
	ErrServerError  = &APIError{StatusCode: 500}
)

// APIError represents a failed HTTP call against the SharePoint REST API.
// The message fields are populated from the OData error envelope when the
// server returns one.
type APIError struct {
	StatusCode    int           `json:"statusCode"`
	Code          string        `json:"code"`    // OData error code, e.g. "-2130575251, Microsoft.SharePoint.SPException"
	Message       string        `json:"message"` // Human-readable message from the envelope
	CorrelationID string        `json:"-"`       // SPRequestGuid header, for support tickets
	RetryAfter    time.Duration `json:"-"`       // From Retry-After header
	Err           error         `json:"-"`       // Underlying error for wrapping
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		if e.CorrelationID != "" {
			return fmt.Sprintf("sharepoint: API error (status %d, correlation %s): %s", e.StatusCode, e.CorrelationID, e.Message)
		}
		return fmt.Sprintf("sharepoint: API error (status %d): %s", e.StatusCode, e.Message)
	}
	if e.CorrelationID != "" {
		return fmt.Sprintf("sharepoint: API error (status %d, correlation %s)", e.StatusCode, e.CorrelationID)
	}
	return fmt.Sprintf("sharepoint: API error (status %d)", e.StatusCode)
}

// Unwrap returns the underlying error for error chain support.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for errors.Is(). It matches on status code,
// allowing comparisons like:
//
//	if errors.Is(err, sharepoint.ErrNotFound) { ... }
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsRetryable returns true if the request can be retried.
// Throttling responses and server errors are retryable.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 429 || e.StatusCode == 503 || e.StatusCode >= 500
}

// IsNotFound returns true if the error is a 404 Not Found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsThrottled returns true if the server throttled the request (429 or 503).
func (e *APIError) IsThrottled() bool {
	return e.StatusCode == 429 || e.StatusCode == 503
}

// ErrorCode returns the category of this error.
func (e *APIError) ErrorCode() ErrorCode {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return ErrCodeAuth
	case e.StatusCode == 429 || e.StatusCode == 503:
		return ErrCodeThrottle
	default:
		return ErrCodeAPI
	}
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsRetryable returns true if the error represents a retryable condition.
// Network errors and throttling/server-error responses qualify.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.IsRetryable()
	}
	// Non-API transport failures are assumed transient.
	return true
}

// RetryAfter returns the server-suggested retry delay, if any.
func RetryAfter(err error) time.Duration {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.RetryAfter
	}
	return 0
}

// odataErrorEnvelope mirrors the two error body shapes the REST API produces:
// verbose ("odata.error") and minimal ("error"). Both carry a code and a
// message object with a localized value.
type odataErrorEnvelope struct {
	ODataError *odataErrorBody `json:"odata.error"`
	Error      *odataErrorBody `json:"error"`
}

type odataErrorBody struct {
	Code    string            `json:"code"`
	Message odataErrorMessage `json:"message"`
}

// odataErrorMessage unmarshals either {"lang": "...", "value": "..."} or a
// bare string, which some endpoints return.
type odataErrorMessage struct {
	Value string
}

func (m *odataErrorMessage) UnmarshalJSON(data []byte) error {
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Value != "" {
		m.Value = obj.Value
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Value = s
		return nil
	}
	return nil
}

// parseODataError populates code and message from a response body, if it
// carries a recognizable OData error envelope.
func (e *APIError) parseODataError(body []byte) {
	if len(body) == 0 {
		return
	}
	var env odataErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return
	}
	b := env.ODataError
	if b == nil {
		b = env.Error
	}
	if b == nil {
		return
	}
	e.Code = b.Code
	e.Message = b.Message.Value
}
