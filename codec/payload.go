// Package codec turns request payloads into wire requests and raw responses
// into uniform, renderable results.
package codec

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
)

// ErrInvalidPayload is returned by RequestPayload.Validate.
var ErrInvalidPayload = errors.New("invalid request payload")

// Modality is a declared kind of user input an endpoint accepts.
type Modality string

const (
	ModalityText Modality = "text"
	ModalityJSON Modality = "json"
	ModalityFile Modality = "file"
)

func (m Modality) Valid() bool {
	switch m {
	case ModalityText, ModalityJSON, ModalityFile:
		return true
	}
	return false
}

// File is one user-supplied file blob.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"-"`
}

func (f File) contentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(f.Name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// RequestPayload describes one endpoint call. Empty Text and JSON mean the
// input is absent.
type RequestPayload struct {
	Endpoint   string     `json:"endpoint"`
	Method     string     `json:"method"`
	InputTypes []Modality `json:"inputTypes"`
	Text       string     `json:"text,omitempty"`
	JSON       string     `json:"json,omitempty"`
	Files      []File     `json:"files,omitempty"`
}

func (p RequestPayload) Accepts(m Modality) bool {
	return slices.Contains(p.InputTypes, m)
}

// Encoding is the wire shape a payload is sent as.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingMultipart
	EncodingQuery
)

func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingMultipart:
		return "multipart"
	case EncodingQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Encoding picks the wire shape: GET always goes as a query, a declared file
// modality forces multipart, everything else is a JSON body.
func (p RequestPayload) Encoding() Encoding {
	switch {
	case p.Method == http.MethodGet:
		return EncodingQuery
	case p.Accepts(ModalityFile):
		return EncodingMultipart
	default:
		return EncodingJSON
	}
}

// Validate rejects payloads whose inputs could not be represented on the
// wire. It never inspects the JSON text itself: malformed JSON is forwarded.
func (p RequestPayload) Validate() error {
	if p.Endpoint == "" {
		return fmt.Errorf("%w: missing endpoint", ErrInvalidPayload)
	}
	if p.Method != http.MethodGet && p.Method != http.MethodPost {
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidPayload, p.Method)
	}
	for _, m := range p.InputTypes {
		if !m.Valid() {
			return fmt.Errorf("%w: unknown input type %q", ErrInvalidPayload, m)
		}
	}
	if p.Method == http.MethodGet {
		if p.JSON != "" {
			return fmt.Errorf("%w: json input cannot be sent with GET", ErrInvalidPayload)
		}
		if len(p.Files) > 0 {
			return fmt.Errorf("%w: files cannot be sent with GET", ErrInvalidPayload)
		}
	}
	if len(p.Files) > 0 && !p.Accepts(ModalityFile) {
		return fmt.Errorf("%w: %s does not accept file input", ErrInvalidPayload, p.Endpoint)
	}
	return nil
}
