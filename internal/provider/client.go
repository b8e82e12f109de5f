package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	maxErrorBody = 512
)

// Client is the shared HTTP plumbing for a single provider. It holds only the
// credential and endpoint; it carries no per-request state.
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	keyParam   string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit. Zero or negative disables limiting.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewClient creates the shared client for a provider. keyParam is the query
// parameter the provider expects the credential in.
func NewClient(name, baseURL, apiKey, keyParam string, opts ...Option) *Client {
	c := &Client{
		name:     name,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		keyParam: keyParam,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the provider name used in errors and logs.
func (c *Client) Name() string {
	return c.name
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Logger returns the configured logger, which may be nil.
func (c *Client) Logger() arbor.ILogger {
	return c.logger
}

// Get performs a GET request and returns the raw body of a 2xx response.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, MissingCredential(c.name)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewError(c.name, KindTransportFailure, err)
		}
	}

	reqURL, err := c.buildURL(path, params)
	if err != nil {
		return nil, NewError(c.name, KindInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, NewError(c.name, KindInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("provider", c.name).
			Str("url", c.baseURL+path).
			Msg("Provider API request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewError(c.name, KindTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(c.name, KindTransportFailure, fmt.Errorf("failed to read response: %w", err))
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("provider", c.name).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("Provider API response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, StatusError(c.name, resp.StatusCode, truncate(string(body), maxErrorBody))
	}

	return body, nil
}

// GetJSON performs a GET request and decodes the JSON body into result.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, result interface{}) error {
	body, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return Empty(c.name, "empty response body")
	}
	if err := json.Unmarshal(body, result); err != nil {
		return Malformed(c.name, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *Client) buildURL(path string, params url.Values) (string, error) {
	base, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("base URL %q must be absolute", c.baseURL)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set(c.keyParam, c.apiKey)
	base.RawQuery = query.Encode()

	return base.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
