package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error is the single failure type surfaced by the transport.
type Error struct {
	Op         string // build, auth, send, read or status
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport %s %s %s: unexpected status: %s", e.Op, e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("transport %s %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Timeout reports whether the exchange was cut off by the client timeout or
// a context deadline.
func (e *Error) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}
