// Package blob holds binary response bodies behind caller-resolvable URLs.
//
// A Handle is created by the response decoder and released by whoever renders
// it; the store never expires handles on its own.
package blob

import (
	"encoding/base64"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

// Store creates, resolves and releases blob handles.
type Store interface {
	Create(data []byte, mimeType, filename string) (*Handle, error)
	Get(id string) (*Handle, error)
	Release(id string) error
}

// Handle references one stored blob.
type Handle struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Filename string `json:"filename,omitempty"`

	data  []byte
	store Store
}

func (h *Handle) Bytes() []byte { return h.data }

func (h *Handle) Size() int { return len(h.data) }

// Release frees the blob in its store. Releasing twice, or releasing a
// detached handle, is a no-op.
func (h *Handle) Release() error {
	if h == nil || h.store == nil {
		return nil
	}
	err := h.store.Release(h.ID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Detached wraps data in a handle that is not backed by any store. Its URL is
// a self-contained data: URL.
func Detached(data []byte, mimeType, filename string) *Handle {
	return &Handle{
		URL:      DataURL(data, mimeType),
		MimeType: mimeType,
		Filename: filename,
		data:     data,
	}
}

func DataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
