package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError reports a non-2xx HTTP response. The body is intentionally
// not carried; collectors treat any non-2xx as "skip this item".
type StatusError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status code received.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client is a thin wrapper around http.Client shared by all collectors.
//
// Design decision: one Client per run rather than per request because the
// configuration (User-Agent, timeout, body limit) must be consistent across
// a run, and connection pooling works better with a shared transport.
type Client struct {
	// httpClient carries the transport and timeout.
	httpClient *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps response body reads, in bytes.
	maxBodySize int64

	// headers are extra headers sent with every request (API keys).
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxBodySize sets the response body size limit in bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithHeader adds a header sent with every request. Used for API key
// headers; values set here are never logged unredacted.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// NewClient creates a Client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		maxBodySize: 5 * 1024 * 1024,
		headers:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get performs a GET request against rawURL with the given query parameters
// and returns the response body. Non-2xx responses return a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		// Merge with any parameters already present in the URL.
		q := u.Query()
		for key, values := range params {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// GetJSON performs a GET request and decodes the JSON response into v.
// The raw body is returned alongside so callers can mirror the upstream
// payload into the *_raw.json artifacts without a second marshal.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) ([]byte, error) {
	body, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("malformed JSON payload: %w", err)
	}

	return body, nil
}
