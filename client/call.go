package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aiweb/blob"
	"github.com/aiweb/codec"
	"github.com/aiweb/logger"
	"github.com/aiweb/transport"

	"github.com/google/uuid"
)

// Client is the request/response marshaler. It holds no per-call state; one
// instance is shared by every caller in the process.
type Client struct {
	log       *logger.Logger
	transport transport.Interface
	decoder   *codec.Decoder
}

// New wires the marshaler to the process-wide transport. Binary results are
// placed in store; a nil store yields data: URLs.
func New(t transport.Interface, store blob.Store) *Client {
	return &Client{
		log:       logger.NewLogger("Client", uuid.NewString()),
		transport: t,
		decoder:   codec.NewDecoder(store),
	}
}

// Call validates, encodes and sends one payload and decodes the response.
// Only payload validation and transport failures are returned as errors; any
// response that arrives is decoded into some ParsedResponse.
func (c *Client) Call(ctx context.Context, p codec.RequestPayload) (*codec.ParsedResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	req, err := codec.EncodeRequest(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s: %w", p.Method, p.Endpoint, err)
	}
	if p.JSON != "" && p.Encoding() == codec.EncodingJSON && !json.Valid([]byte(p.JSON)) {
		c.log.Warn(fmt.Sprintf("json input for %s does not parse; sending it as a string", p.Endpoint))
	}

	c.log.Debug(fmt.Sprintf("sending %s %s as %s", p.Method, p.Endpoint, p.Encoding()))
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.log.Error(fmt.Sprintf("%s %s failed: %v", p.Method, p.Endpoint, err))
		return nil, fmt.Errorf("call %s %s: %w", p.Method, p.Endpoint, err)
	}

	res := c.decoder.Decode(resp.Body, resp.Header)
	c.log.Info(fmt.Sprintf("%s %s -> %s (%s, %d bytes)", p.Method, p.Endpoint, res.Kind, res.MimeType, len(resp.Body)))
	return res, nil
}
