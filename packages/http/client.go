package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"
)

const (
	// DefaultBaseURL is the public posts API the harness targets by default
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
)

// ErrAbsoluteURL is returned when a request path would bypass the base URL.
var ErrAbsoluteURL = errors.New("request path must be relative to the base URL")

// Client is bound to a single base URL for its whole lifetime. It holds no
// per-request state and is safe to share.
type Client struct {
	httpClient     *http.Client
	baseURL        *neturl.URL
	timeout        time.Duration
	transport      http.RoundTripper
	defaultHeaders map[string]string
}

// Result carries the outcome of an asynchronous dispatch.
type Result struct {
	Response *Response
	Err      error
}

type ClientOption func(*Client)

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if err := ValidateURL(baseURL); err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}
	u, err := neturl.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}

	c := &Client{
		baseURL:        u,
		timeout:        DefaultTimeout,
		defaultHeaders: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = &http.Client{
		Transport: c.transport,
		Timeout:   c.timeout,
	}

	return c, nil
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransport replaces the round tripper, mainly for tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.transport = rt
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders sets multiple default headers for all requests
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// ResolveURL joins the request path onto the base URL. A query written into
// the path is kept, and QueryParams override keys it shares with it.
func (c *Client) ResolveURL(req *Request) (string, error) {
	ref, err := neturl.Parse(req.Path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", req.Path, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("%w: %q", ErrAbsoluteURL, req.Path)
	}

	u := c.baseURL.JoinPath(ref.Path)
	if ref.RawQuery == "" && len(req.QueryParams) == 0 {
		return u.String(), nil
	}

	q := u.Query()
	for k, vs := range ref.Query() {
		q[k] = vs
	}
	for k, v := range req.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Do sends the request and blocks until the full response body is read.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.ResolveURL(req)
	if err != nil {
		return nil, err
	}

	payload, err := req.EncodeBody()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
	}, nil
}

// DoAsync dispatches the request on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (c *Client) DoAsync(ctx context.Context, req *Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		resp, err := c.Do(ctx, req)
		ch <- Result{Response: resp, Err: err}
	}()
	return ch
}

// ValidateURL checks that a URL is well-formed and uses an allowed scheme
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	// Check for valid scheme
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (only http and https are allowed)", u.Scheme)
	}

	// Check for valid host
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}

	return nil
}
