package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/aiweb/transport"
)

// Multipart and JSON field names shared with the backends.
const (
	FieldText  = "text"
	FieldJSON  = "json"
	FieldFiles = "files"
)

// EncodeRequest builds the transport request for a payload. It does not call
// Validate; unsupported inputs for the chosen encoding are left out.
func EncodeRequest(p RequestPayload) (*transport.Request, error) {
	req := &transport.Request{
		Method: p.Method,
		Path:   p.Endpoint,
		Header: make(http.Header),
	}

	var err error
	switch p.Encoding() {
	case EncodingQuery:
		encodeQuery(req, p)
	case EncodingMultipart:
		err = encodeMultipart(req, p)
	default:
		err = encodeJSON(req, p)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func encodeQuery(req *transport.Request, p RequestPayload) {
	if p.Text != "" {
		req.Query = url.Values{FieldText: {p.Text}}
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart writes text and json as plain form fields (json is NOT
// parsed) and every file under the repeated "files" field, in order.
func encodeMultipart(req *transport.Request, p RequestPayload) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if p.Text != "" {
		if err := w.WriteField(FieldText, p.Text); err != nil {
			return fmt.Errorf("failed to write text field: %w", err)
		}
	}
	if p.JSON != "" {
		if err := w.WriteField(FieldJSON, p.JSON); err != nil {
			return fmt.Errorf("failed to write json field: %w", err)
		}
	}
	for _, f := range p.Files {
		name := f.Name
		if name == "" {
			name = "blob"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldFiles, quoteEscaper.Replace(name)))
		h.Set("Content-Type", f.contentType())
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create part for %s: %w", name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write part for %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	// The boundary comes from the writer, never from the caller.
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Body = buf.Bytes()
	return nil
}

type jsonBody struct {
	Text string          `json:"text,omitempty"`
	JSON json.RawMessage `json:"json,omitempty"`
}

func encodeJSON(req *transport.Request, p RequestPayload) error {
	body := jsonBody{Text: p.Text}
	if p.JSON != "" {
		body.JSON = EmbedJSON(p.JSON)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Body = data
	return nil
}

// EmbedJSON returns raw as a JSON value when it parses, and as a JSON string
// holding the original text when it does not.
func EmbedJSON(raw string) json.RawMessage {
	if json.Valid([]byte(raw)) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(raw)); err == nil {
			return buf.Bytes()
		}
	}
	quoted, _ := json.Marshal(raw)
	return quoted
}
