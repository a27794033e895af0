package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/aiweb/blob"
)

// Kind tags the shape of ParsedResponse.Data.
type Kind string

const (
	KindJSON  Kind = "json"  // Data is the parsed JSON value
	KindText  Kind = "text"  // Data is the decoded string
	KindImage Kind = "image" // Data is a URL to the image blob
	KindFile  Kind = "file"  // Data is a URL to a downloadable blob
)

const DefaultMimeType = "application/octet-stream"

// ParsedResponse is the uniform decoded response handed to the UI.
type ParsedResponse struct {
	Kind     Kind         `json:"type"`
	Data     any          `json:"data"`
	Raw      string       `json:"raw,omitempty"`
	Blob     *blob.Handle `json:"-"`
	Filename string       `json:"filename,omitempty"`
	MimeType string       `json:"mimeType"`
}

// Release frees the blob behind image and file results. The decoder creates
// blobs but never releases them.
func (r *ParsedResponse) Release() error {
	if r == nil {
		return nil
	}
	return r.Blob.Release()
}

// Decoder classifies raw responses. Binary bodies are placed in Store; with a
// nil Store, or when the store fails, they are returned as data: URLs.
type Decoder struct {
	Store blob.Store
}

func NewDecoder(store blob.Store) *Decoder {
	return &Decoder{Store: store}
}

// Decode never fails: every body/header combination maps to a result.
func (d *Decoder) Decode(body []byte, header http.Header) *ParsedResponse {
	mimeType := ResolveMimeType(header.Get("Content-Type"))
	filename, _ := FilenameFromDisposition(header.Get("Content-Disposition"))

	switch {
	case IsJSONType(mimeType):
		text := decodeText(body)
		v, err := parseJSON(text)
		if err != nil {
			return &ParsedResponse{Kind: KindText, Data: text, Raw: text, MimeType: mimeType}
		}
		return &ParsedResponse{Kind: KindJSON, Data: v, Raw: text, MimeType: mimeType}

	case strings.HasPrefix(mimeType, "text/"):
		text := decodeText(body)
		return &ParsedResponse{Kind: KindText, Data: text, Raw: text, MimeType: mimeType}

	case strings.HasPrefix(mimeType, "image/"):
		h := d.wrap(body, mimeType, filename)
		return &ParsedResponse{Kind: KindImage, Data: h.URL, Blob: h, Filename: filename, MimeType: mimeType}

	default:
		h := d.wrap(body, mimeType, filename)
		return &ParsedResponse{Kind: KindFile, Data: h.URL, Blob: h, Filename: filename, MimeType: mimeType}
	}
}

func (d *Decoder) wrap(body []byte, mimeType, filename string) *blob.Handle {
	if d.Store != nil {
		if h, err := d.Store.Create(body, mimeType, filename); err == nil {
			return h
		}
	}
	return blob.Detached(body, mimeType, filename)
}

// ResolveMimeType strips parameters from a Content-Type value and lowercases
// it. An empty value resolves to application/octet-stream.
func ResolveMimeType(contentType string) string {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		return DefaultMimeType
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "" {
		return mt
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "" {
		return DefaultMimeType
	}
	return ct
}

// IsJSONType matches application/json and structured +json types such as
// application/problem+json.
func IsJSONType(mimeType string) bool {
	if mimeType == "application/json" {
		return true
	}
	return strings.HasPrefix(mimeType, "application/") && strings.HasSuffix(mimeType, "+json")
}

// decodeText reads the body as UTF-8, dropping a leading BOM and replacing
// invalid sequences.
func decodeText(body []byte) string {
	s := strings.ToValidUTF8(string(body), "\uFFFD")
	return strings.TrimPrefix(s, "\uFEFF")
}

func parseJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// PrettyJSON re-indents a JSON value for display.
func PrettyJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}
