package webex

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultBaseURL is the production Webex API endpoint.
	DefaultBaseURL = "https://webexapi.com/v1/"

	// DefaultTimeout bounds a single HTTP request attempt. Rate-limit
	// waits between attempts are not counted against it.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRateLimitRetries bounds how many times a rate-limited
	// request is re-issued before RateLimitError is surfaced.
	DefaultMaxRateLimitRetries = 4

	// DefaultRetryAfterFallback is the wait applied when a 429 response
	// carries no Retry-After header. It seeds an exponential backoff, so
	// successive header-less 429s wait progressively longer.
	DefaultRetryAfterFallback = 15 * time.Second
)

// OAuthParams carries the authorization-code grant parameters used to
// exchange a one-time code for an access token at construction.
type OAuthParams struct {
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
}

// complete reports whether every parameter of the grant is present.
func (p *OAuthParams) complete() bool {
	return p != nil && p.ClientID != "" && p.ClientSecret != "" && p.Code != "" && p.RedirectURI != ""
}

// Config contains the construction surface of a Client.
//
// The zero value is not usable directly; pass the struct to New, which
// applies defaults before validating. All fields are read once at
// construction and never mutated afterwards.
type Config struct {
	// AccessToken is the bearer token for API calls. When empty, the
	// WEBEX_TEAMS_ACCESS_TOKEN environment variable and then the OAuth
	// parameters are consulted, in that order.
	AccessToken string

	// OAuth enables a one-time authorization-code exchange when no token
	// is available from AccessToken or the environment.
	OAuth *OAuthParams

	// BaseURL is prefixed to every endpoint suffix.
	// Default: DefaultBaseURL.
	BaseURL string

	// Timeout for a single RESTful HTTP request.
	// Default: DefaultTimeout.
	Timeout time.Duration

	// WaitOnRateLimit enables automatic 429 handling: the session sleeps
	// for the server-indicated Retry-After and retries. When disabled, a
	// 429 surfaces immediately as a RateLimitError.
	// Default: enabled.
	WaitOnRateLimit *bool

	// MaxRateLimitRetries bounds automatic 429 retries per request.
	// Default: DefaultMaxRateLimitRetries.
	MaxRateLimitRetries int

	// RetryAfterFallback is the initial wait when a 429 response has no
	// Retry-After header. Default: DefaultRetryAfterFallback.
	RetryAfterFallback time.Duration

	// Proxy is an optional proxy URL applied to the session transport.
	Proxy string

	// TLSVerify controls TLS certificate verification. Disable only
	// against test endpoints with self-signed certificates.
	TLSVerify *bool

	// ObjectFactory converts decoded JSON payloads into Records.
	// Default: RecordFactory.
	ObjectFactory ObjectFactory

	// Logger receives debug-level request logging.
	// Default: hclog.NewNullLogger().
	Logger hclog.Logger

	// HTTPClient overrides the session's HTTP client. When set, Timeout,
	// Proxy, and TLSVerify are left to the caller's client.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config with production defaults and no
// credentials.
func DefaultConfig() *Config {
	wait := true
	verify := true
	return &Config{
		BaseURL:             DefaultBaseURL,
		Timeout:             DefaultTimeout,
		WaitOnRateLimit:     &wait,
		MaxRateLimitRetries: DefaultMaxRateLimitRetries,
		RetryAfterFallback:  DefaultRetryAfterFallback,
		TLSVerify:           &verify,
	}
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.WaitOnRateLimit == nil {
		c.WaitOnRateLimit = defaults.WaitOnRateLimit
	}
	if c.MaxRateLimitRetries == 0 {
		c.MaxRateLimitRetries = defaults.MaxRateLimitRetries
	}
	if c.RetryAfterFallback == 0 {
		c.RetryAfterFallback = defaults.RetryAfterFallback
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.ObjectFactory == nil {
		c.ObjectFactory = RecordFactory
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Validate checks the configuration after defaults are applied. Credential
// presence is checked separately by the resolver, which knows about the
// environment fallback.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.MaxRateLimitRetries, validation.Min(0)),
		validation.Field(&c.RetryAfterFallback, validation.Min(time.Duration(0))),
		validation.Field(&c.Proxy, is.URL),
	)
	if err != nil {
		return &ConfigError{Reason: "invalid configuration", Err: err}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ConfigError{Reason: "invalid base URL", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Reason: fmt.Sprintf("base URL must use http or https scheme, got %q", u.Scheme)}
	}
	return nil
}

// newHTTPClient builds the session's HTTP client from the configuration.
// Callers that set Config.HTTPClient bypass this entirely.
func (c *Config) newHTTPClient() (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.Proxy != "" {
		proxyURL, err := url.Parse(c.Proxy)
		if err != nil {
			return nil, &ConfigError{Reason: "invalid proxy URL", Err: err}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}, nil
}
