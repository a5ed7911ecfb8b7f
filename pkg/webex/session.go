package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Session is the shared authenticated HTTP execution context. Every
// resource accessor under one Client issues its requests through the same
// Session; there are no per-accessor connections.
//
// A Session is safe for concurrent use. The only mutable shared state is
// the rate-limit bookkeeping, which is mutex-guarded.
type Session struct {
	baseURL             *url.URL
	token               string
	timeout             time.Duration
	waitOnRateLimit     bool
	maxRateLimitRetries int
	retryAfterFallback  time.Duration
	client              *http.Client
	logger              hclog.Logger

	closeCtx  context.Context
	closeFn   context.CancelFunc
	closeOnce sync.Once

	// Rate-limit bookkeeping: requests issued while the API has asked us
	// to back off wait until the window passes (when handling is enabled).
	mu               sync.Mutex
	rateLimitedUntil time.Time
}

// newSession builds a Session from a validated Config and resolved token.
func newSession(cfg *Config, token string) (*Session, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid base URL", Err: err}
	}

	client := cfg.HTTPClient
	if client == nil {
		client, err = cfg.newHTTPClient()
		if err != nil {
			return nil, err
		}
	}

	closeCtx, closeFn := context.WithCancel(context.Background())

	return &Session{
		baseURL:             base,
		token:               token,
		timeout:             cfg.Timeout,
		waitOnRateLimit:     *cfg.WaitOnRateLimit,
		maxRateLimitRetries: cfg.MaxRateLimitRetries,
		retryAfterFallback:  cfg.RetryAfterFallback,
		client:              client,
		logger:              cfg.Logger.Named("session"),
		closeCtx:            closeCtx,
		closeFn:             closeFn,
	}, nil
}

// Close releases the session's connection pool. Requests in flight fail
// with ErrSessionClosed; Close is idempotent and never blocks on them.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeFn()
		s.client.CloseIdleConnections()
		s.logger.Debug("session closed")
	})
	return nil
}

func (s *Session) closed() bool {
	select {
	case <-s.closeCtx.Done():
		return true
	default:
		return false
	}
}

// Request issues one API call and returns the raw JSON response body, or
// nil for responses with empty bodies. The endpoint suffix is relative to
// the base URL ("people", "rooms/{id}", ...). A JSON body is marshalled
// from jsonBody when non-nil.
func (s *Session) Request(ctx context.Context, method, suffix string, params url.Values, jsonBody any) (json.RawMessage, error) {
	var payload []byte
	contentType := ""
	if jsonBody != nil {
		b, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body for %s %s: %w", method, suffix, err)
		}
		payload = b
		contentType = "application/json"
	}
	raw, _, err := s.do(ctx, s.token, method, suffix, params, contentType, payload, nil)
	return raw, err
}

// RequestWithHeaders is Request with caller-supplied headers merged in.
// Authorization cannot be overridden.
func (s *Session) RequestWithHeaders(ctx context.Context, method, suffix string, params url.Values, jsonBody any, headers http.Header) (json.RawMessage, error) {
	var payload []byte
	contentType := ""
	if jsonBody != nil {
		b, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body for %s %s: %w", method, suffix, err)
		}
		payload = b
		contentType = "application/json"
	}
	raw, _, err := s.do(ctx, s.token, method, suffix, params, contentType, payload, headers)
	return raw, err
}

// Post issues a POST with a prebuilt body and explicit content type. Used
// for multipart uploads, where the body is not JSON.
func (s *Session) Post(ctx context.Context, suffix, contentType string, body []byte) (json.RawMessage, error) {
	raw, _, err := s.do(ctx, s.token, http.MethodPost, suffix, nil, contentType, body, nil)
	return raw, err
}

// requestWithBearer issues a request under a bearer token other than the
// session's own. Guest logins authenticate with a freshly minted guest JWT.
func (s *Session) requestWithBearer(ctx context.Context, bearer, method, suffix string, params url.Values, jsonBody any) (json.RawMessage, error) {
	var payload []byte
	contentType := ""
	if jsonBody != nil {
		b, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request body for %s %s: %w", method, suffix, err)
		}
		payload = b
		contentType = "application/json"
	}
	raw, _, err := s.do(ctx, bearer, method, suffix, params, contentType, payload, nil)
	return raw, err
}

// do runs the request/retry loop. The payload is a fully materialized byte
// slice so rate-limit retries can re-send it. The second return value is
// the absolute URL of the next page when the response carried a
// Link rel="next" header.
func (s *Session) do(ctx context.Context, bearer, method, suffix string, params url.Values, contentType string, payload []byte, extra http.Header) (json.RawMessage, string, error) {
	if s.closed() {
		return nil, "", ErrSessionClosed
	}

	endpoint, err := s.resolveURL(suffix, params)
	if err != nil {
		return nil, "", err
	}

	// Tie the request to the session lifecycle: Close fails it with
	// ErrSessionClosed without touching other callers' contexts.
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	stop := context.AfterFunc(s.closeCtx, func() { cancel(ErrSessionClosed) })
	defer stop()

	if err := s.awaitRateLimitWindow(ctx); err != nil {
		return nil, "", err
	}

	// Fallback wait policy for 429 responses without a Retry-After
	// header. Zero randomization keeps the waits reproducible.
	fallback := backoff.NewExponentialBackOff()
	fallback.InitialInterval = s.retryAfterFallback
	fallback.RandomizationFactor = 0
	fallback.MaxElapsedTime = 0
	fallback.Reset()

	maxAttempts := 1
	if s.waitOnRateLimit {
		maxAttempts += s.maxRateLimitRetries
	}

	for attempt := 1; ; attempt++ {
		raw, next, retryAfter, err := s.attempt(ctx, bearer, method, suffix, endpoint, contentType, payload, extra)
		if err == nil {
			return raw, next, nil
		}

		var rle *RateLimitError
		if !errors.As(err, &rle) {
			return nil, "", err
		}
		if rle.RetryAfter == 0 {
			rle.RetryAfter = fallback.NextBackOff()
			retryAfter = rle.RetryAfter
		}
		s.noteRateLimit(retryAfter)

		if !s.waitOnRateLimit || attempt >= maxAttempts {
			return nil, "", rle
		}

		s.logger.Warn("rate limited, backing off",
			"method", method,
			"endpoint", suffix,
			"retry_after", retryAfter,
			"attempt", attempt,
		)
		if err := s.sleep(ctx, retryAfter); err != nil {
			return nil, "", err
		}
	}
}

// attempt issues one HTTP round trip and maps the response onto the
// session's error kinds. A 429 comes back as *RateLimitError with
// RetryAfter zero when the response had no usable Retry-After header.
func (s *Session) attempt(ctx context.Context, bearer, method, suffix, endpoint, contentType string, payload []byte, extra http.Header) (json.RawMessage, string, time.Duration, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, "", 0, fmt.Errorf("create request for %s %s: %w", method, suffix, err)
	}

	for name, values := range extra {
		if http.CanonicalHeaderKey(name) == "Authorization" {
			continue
		}
		req.Header[http.CanonicalHeaderKey(name)] = values
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	trackingID := "webex-go_" + uuid.NewString()
	req.Header.Set("TrackingID", trackingID)

	s.logger.Debug("issuing request",
		"method", method,
		"endpoint", suffix,
		"tracking_id", trackingID,
	)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", 0, s.mapTransportError(ctx, method, suffix, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", 0, s.mapTransportError(ctx, method, suffix, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, "", retryAfter, &RateLimitError{
			APIError:   s.apiError(method, suffix, resp, respBody),
			RetryAfter: retryAfter,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := s.apiError(method, suffix, resp, respBody)
		return nil, "", 0, &apiErr
	}

	next := parseLinkNext(resp.Header.Values("Link"))

	if len(respBody) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil, next, 0, nil
	}

	if !json.Valid(respBody) {
		return nil, "", 0, &MalformedResponseError{
			Endpoint: suffix,
			Err:      fmt.Errorf("%d-byte body is not valid JSON", len(respBody)),
		}
	}
	return json.RawMessage(respBody), next, 0, nil
}

// mapTransportError distinguishes session closure and timeouts from other
// transport failures.
func (s *Session) mapTransportError(ctx context.Context, method, suffix string, err error) error {
	if errors.Is(context.Cause(ctx), ErrSessionClosed) {
		return ErrSessionClosed
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &TimeoutError{Method: method, Endpoint: suffix, Timeout: s.timeout}
	}
	return fmt.Errorf("%s %s: %w", method, suffix, err)
}

// apiError decodes the standard Webex error body, degrading to the raw
// status line when the body is absent or not JSON.
func (s *Session) apiError(method, suffix string, resp *http.Response, body []byte) APIError {
	apiErr := APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Method:     method,
		Endpoint:   suffix,
		TrackingID: resp.Header.Get("Trackingid"),
	}

	var decoded struct {
		Message string `json:"message"`
		Errors  []struct {
			Description string `json:"description"`
		} `json:"errors"`
		TrackingID string `json:"trackingId"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		apiErr.Message = decoded.Message
		for _, e := range decoded.Errors {
			apiErr.Errors = append(apiErr.Errors, e.Description)
		}
		if decoded.TrackingID != "" {
			apiErr.TrackingID = decoded.TrackingID
		}
	}
	return apiErr
}

// resolveURL composes the full request URL from the base URL, endpoint
// suffix, and query parameters. Absolute suffixes (continuation URLs from a
// Link header) pass through with their own query string.
func (s *Session) resolveURL(suffix string, params url.Values) (string, error) {
	ref, err := url.Parse(suffix)
	if err != nil {
		return "", fmt.Errorf("resolve endpoint %q: %w", suffix, err)
	}
	u := s.baseURL.ResolveReference(ref)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// noteRateLimit records when the API last asked us to back off.
func (s *Session) noteRateLimit(retryAfter time.Duration) {
	until := time.Now().Add(retryAfter)
	s.mu.Lock()
	if until.After(s.rateLimitedUntil) {
		s.rateLimitedUntil = until
	}
	s.mu.Unlock()
}

// awaitRateLimitWindow delays a new request while a previously observed
// rate-limit window is still open. Only applies when handling is enabled.
func (s *Session) awaitRateLimitWindow(ctx context.Context) error {
	if !s.waitOnRateLimit {
		return nil
	}
	s.mu.Lock()
	wait := time.Until(s.rateLimitedUntil)
	s.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	s.logger.Debug("waiting out rate-limit window", "wait", wait)
	return s.sleep(ctx, wait)
}

// sleep waits for the duration unless the context is cancelled or the
// session closes first.
func (s *Session) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		if errors.Is(context.Cause(ctx), ErrSessionClosed) {
			return ErrSessionClosed
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter reads the Retry-After header as delay seconds, clamped to
// at least one second. Zero means the header was absent or unusable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
