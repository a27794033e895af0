package catalog

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aiweb/codec"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	list := c.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "generate_text", list[0].ID)

	e, ok := c.Lookup("multi_modal")
	require.True(t, ok)
	assert.Equal(t, "/api/multi-modal", e.Path)
	assert.Equal(t, []codec.Modality{codec.ModalityText, codec.ModalityFile}, e.Inputs)

	_, ok = c.Lookup("nope")
	assert.False(t, ok)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestListIsACopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0].Path = "/changed"

	e, _ := c.Lookup(list[0].ID)
	assert.Equal(t, "/api/generate-text", e.Path)
}

func TestNewRejectsBadEndpoints(t *testing.T) {
	_, err := New(Endpoint{ID: "a", Path: "/a", Method: http.MethodPost}, Endpoint{ID: "a", Path: "/b", Method: http.MethodPost})
	assert.Error(t, err)

	_, err = New(Endpoint{ID: "a", Path: "/a", Method: http.MethodPut})
	assert.Error(t, err)

	_, err = New(Endpoint{ID: "a", Path: "/a", Method: http.MethodPost, Inputs: []codec.Modality{"audio"}})
	assert.Error(t, err)
}

func TestPayload(t *testing.T) {
	e, _ := Default().Lookup("multi_modal")
	files := []codec.File{{Name: "a.png"}}
	p := e.Payload("describe", "", files)

	assert.Equal(t, "/api/multi-modal", p.Endpoint)
	assert.Equal(t, http.MethodPost, p.Method)
	assert.Equal(t, codec.EncodingMultipart, p.Encoding())
	assert.Equal(t, files, p.Files)
}

func TestMerge(t *testing.T) {
	c, err := Default().Merge([]Endpoint{
		{ID: "generate_text", Name: "Local LLM", Path: "/v2/generate", Method: http.MethodPost, Inputs: []codec.Modality{codec.ModalityText}},
		{ID: "echo", Name: "Echo", Path: "/echo", Method: http.MethodPost, Inputs: []codec.Modality{codec.ModalityJSON}},
	})
	require.NoError(t, err)

	list := c.List()
	assert.Equal(t, "generate_text", list[0].ID)
	assert.Equal(t, "/v2/generate", list[0].Path)
	assert.Equal(t, "echo", list[len(list)-1].ID)
	assert.Len(t, list, len(Default().List())+1)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
endpoints:
  - id: ocr_v2
    name: OCR v2
    description: newer recognizer
    path: /v2/recognize
    method: POST
    inputs: [file]
    errors:
      - code: 413
        msg: too large
`)))

	c, err := FromViper(v)
	require.NoError(t, err)

	e, ok := c.Lookup("ocr_v2")
	require.True(t, ok)
	assert.Equal(t, "/v2/recognize", e.Path)
	assert.Equal(t, []codec.Modality{codec.ModalityFile}, e.Inputs)
	assert.Equal(t, []ErrorCode{{Code: 413, Msg: "too large"}}, e.Errors)
}

func TestFromViperWithoutOverrides(t *testing.T) {
	c, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, len(Default().List()), len(c.List()))
}
