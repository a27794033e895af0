package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aiweb/logger"

	"github.com/google/uuid"
)

const DefaultTimeout = 60 * time.Second

// TokenSource returns a bearer token for the next request.
type TokenSource func() (string, error)

type Option func(*HTTPClient)

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// HTTPClient is the process-wide transport: a fixed base URL and a fixed
// timeout, reused across calls.
type HTTPClient struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		log:     logger.NewLogger("Transport", uuid.NewString()),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Timeout() time.Duration { return c.httpClient.Timeout }

func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, &Error{Op: "build", Method: method, URL: req.Path, Err: err}
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Op: "build", Method: method, URL: target, Err: err}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		tok, err := c.tokens()
		if err != nil {
			return nil, &Error{Op: "auth", Method: method, URL: target, Err: err}
		}
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	c.log.Debug(fmt.Sprintf("%s %s (request %s, %d body bytes)", method, target, requestID, len(req.Body)))
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn(fmt.Sprintf("%s %s failed: %v", method, target, err))
		return nil, &Error{Op: "send", Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn(fmt.Sprintf("%s %s: failed to read body: %v", method, target, err))
		return nil, &Error{Op: "read", Method: method, URL: target, Err: err}
	}

	c.log.Info(fmt.Sprintf("%s %s -> %s in %s", method, target, resp.Status, time.Since(start).Round(time.Millisecond)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Op:         "status",
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       data,
			Err:        errors.New(resp.Status),
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *HTTPClient) resolve(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
