package webex

import (
	"errors"
	"fmt"
	"time"
)

// ErrSessionClosed is returned by requests issued on (or interrupted by) a
// closed session.
var ErrSessionClosed = errors.New("webex: session closed")

// ConfigError reports an invalid construction-time configuration, including
// failure to resolve an access token from any credential source.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webex: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("webex: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response from the Webex API.
type APIError struct {
	StatusCode int
	Status     string
	Method     string
	Endpoint   string

	// Message and Errors are decoded from the JSON error body when present.
	Message string
	Errors  []string

	// TrackingID identifies the failed request for Webex support.
	TrackingID string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Status
	}
	return fmt.Sprintf("webex: %s %s: [%d] %s", e.Method, e.Endpoint, e.StatusCode, msg)
}

// RateLimitError reports a 429 response, surfaced when automatic rate-limit
// handling is disabled or retry attempts are exhausted. RetryAfter is the
// wait the server asked for, or the session's fallback when the response
// carried no Retry-After header.
type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("webex: %s %s: rate limited, retry after %s", e.Method, e.Endpoint, e.RetryAfter)
}

// Unwrap exposes the embedded APIError so errors.As(*APIError) matches.
func (e *RateLimitError) Unwrap() error { return &e.APIError }

// TimeoutError reports a request that exceeded the configured per-request
// timeout. Timeouts are never retried.
type TimeoutError struct {
	Method   string
	Endpoint string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("webex: %s %s: request exceeded %s timeout", e.Method, e.Endpoint, e.Timeout)
}

// MalformedResponseError reports a response body that was not valid JSON
// where JSON was expected.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("webex: %s: malformed response body: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
