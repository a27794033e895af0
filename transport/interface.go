package transport

import (
	"context"
	"net/http"
	"net/url"
)

// Interface for the transport layer.
type Interface interface {
	// Do performs one request/response exchange and returns the body
	// undecoded. Network failures, timeouts and non-2xx statuses are all
	// reported as *Error.
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request is a transport-level request relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response carries the raw body and the headers exactly as received.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}
