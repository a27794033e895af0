package codec

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodingSelection(t *testing.T) {
	tests := []struct {
		name   string
		method string
		inputs []Modality
		want   Encoding
	}{
		{"text only", http.MethodPost, []Modality{ModalityText}, EncodingJSON},
		{"json only", http.MethodPost, []Modality{ModalityJSON}, EncodingJSON},
		{"no inputs", http.MethodPost, nil, EncodingJSON},
		{"file only", http.MethodPost, []Modality{ModalityFile}, EncodingMultipart},
		{"text and file", http.MethodPost, []Modality{ModalityText, ModalityFile}, EncodingMultipart},
		{"all three", http.MethodPost, []Modality{ModalityJSON, ModalityText, ModalityFile}, EncodingMultipart},
		{"get text", http.MethodGet, []Modality{ModalityText}, EncodingQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := RequestPayload{Endpoint: "/x", Method: tt.method, InputTypes: tt.inputs}
			assert.Equal(t, tt.want, p.Encoding())
		})
	}
}

func TestValidate(t *testing.T) {
	ok := []RequestPayload{
		{Endpoint: "/a", Method: http.MethodPost, InputTypes: []Modality{ModalityJSON}, JSON: "{bad"},
		{Endpoint: "/a", Method: http.MethodGet, InputTypes: []Modality{ModalityText}, Text: "q"},
		{Endpoint: "/a", Method: http.MethodPost, InputTypes: []Modality{ModalityFile}, Files: []File{{Name: "f"}}},
	}
	for _, p := range ok {
		assert.NoError(t, p.Validate())
	}

	bad := []RequestPayload{
		{Method: http.MethodPost},
		{Endpoint: "/a", Method: http.MethodPut},
		{Endpoint: "/a", Method: ""},
		{Endpoint: "/a", Method: http.MethodPost, InputTypes: []Modality{"audio"}},
		{Endpoint: "/a", Method: http.MethodGet, JSON: `{"a":1}`},
		{Endpoint: "/a", Method: http.MethodGet, Files: []File{{Name: "f"}}},
		{Endpoint: "/a", Method: http.MethodPost, InputTypes: []Modality{ModalityText}, Files: []File{{Name: "f"}}},
	}
	for _, p := range bad {
		assert.ErrorIs(t, p.Validate(), ErrInvalidPayload, "%+v", p)
	}
}
