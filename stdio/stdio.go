// Package stdio runs endpoint calls described as newline-delimited JSON.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aiweb/codec"
)

const maxLine = 16 << 20

// Request is one input line. JSON may be an embedded JSON value or a string
// holding raw json input; Files are local paths.
type Request struct {
	ID       string          `json:"id,omitempty"`
	Endpoint string          `json:"endpoint"`
	Text     string          `json:"text,omitempty"`
	JSON     json.RawMessage `json:"json,omitempty"`
	Files    []string        `json:"files,omitempty"`
}

// JSONInput returns the raw json input the way a user would have typed it.
func (r Request) JSONInput() string {
	if len(r.JSON) == 0 || string(r.JSON) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.JSON, &s); err == nil {
		return s
	}
	return string(r.JSON)
}

// Reply is one output line, in the order requests were read.
type Reply struct {
	ID       string                `json:"id,omitempty"`
	Line     int                   `json:"line"`
	OK       bool                  `json:"ok"`
	Result   *codec.ParsedResponse `json:"result,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	Error    string                `json:"error,omitempty"`
}

type Handler func(ctx context.Context, req Request) Reply

// Run reads requests from in until EOF or ctx is done and writes one reply
// per non-empty line to out. Malformed lines produce an error reply and do
// not stop the run.
func Run(ctx context.Context, in io.Reader, out io.Writer, handle Handler) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	n := 0
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var reply Reply
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			reply = Reply{Error: fmt.Sprintf("malformed request: %v", err)}
		} else {
			reply = handle(ctx, req)
			reply.ID = req.ID
		}
		reply.Line = n

		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("failed to write reply for line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stdio scanner error: %w", err)
	}
	return nil
}
