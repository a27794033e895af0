package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formPart struct {
	field, filename, contentType, body string
}

func readMultipart(t *testing.T, contentType string, body []byte) []formPart {
	t.Helper()
	mt, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mt)

	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var parts []formPart
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, formPart{
			field:       p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			body:        string(data),
		})
	}
	return parts
}

func TestEncodeMultipartWhenFileDeclared(t *testing.T) {
	p := RequestPayload{
		Endpoint:   "/api/multi-modal",
		Method:     http.MethodPost,
		InputTypes: []Modality{ModalityText, ModalityFile},
		Text:       "describe the scene",
		JSON:       `{not really json`,
		Files: []File{
			{Name: "first.png", Data: []byte("one")},
			{Name: "second.pdf", ContentType: "application/pdf", Data: []byte("two")},
		},
	}
	require.Equal(t, EncodingMultipart, p.Encoding())

	req, err := EncodeRequest(p)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/multi-modal", req.Path)

	parts := readMultipart(t, req.Header.Get("Content-Type"), req.Body)
	require.Len(t, parts, 4)

	assert.Equal(t, "text", parts[0].field)
	assert.Equal(t, "describe the scene", parts[0].body)

	// json goes out verbatim, even when it does not parse
	assert.Equal(t, "json", parts[1].field)
	assert.Equal(t, `{not really json`, parts[1].body)

	assert.Equal(t, "files", parts[2].field)
	assert.Equal(t, "first.png", parts[2].filename)
	assert.Equal(t, "image/png", parts[2].contentType)
	assert.Equal(t, "one", parts[2].body)

	assert.Equal(t, "files", parts[3].field)
	assert.Equal(t, "second.pdf", parts[3].filename)
	assert.Equal(t, "application/pdf", parts[3].contentType)
	assert.Equal(t, "two", parts[3].body)
}

func TestEncodeMultipartOmitsAbsentFields(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{
		Endpoint:   "/api/analyze-document",
		Method:     http.MethodPost,
		InputTypes: []Modality{ModalityFile},
		Files:      []File{{Data: []byte("x")}},
	})
	require.NoError(t, err)

	parts := readMultipart(t, req.Header.Get("Content-Type"), req.Body)
	require.Len(t, parts, 1)
	assert.Equal(t, "files", parts[0].field)
	assert.Equal(t, "blob", parts[0].filename)
	assert.Equal(t, "application/octet-stream", parts[0].contentType)
}

func TestEncodeJSONBody(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{
		Endpoint:   "/api/generate-text",
		Method:     http.MethodPost,
		InputTypes: []Modality{ModalityText},
		Text:       "write a poem",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"text":"write a poem"}`, string(req.Body))
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{
		Endpoint:   "/api/generate-image",
		Method:     http.MethodPost,
		InputTypes: []Modality{ModalityJSON},
		JSON:       `{"a":1}`,
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, map[string]any{"a": float64(1)}, body["json"])
	assert.JSONEq(t, `{"json":{"a":1}}`, string(req.Body))
}

func TestEncodeJSONFailOpen(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{
		Endpoint:   "/api/generate-image",
		Method:     http.MethodPost,
		InputTypes: []Modality{ModalityJSON},
		JSON:       `{invalid`,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"json":"{invalid"}`, string(req.Body))
}

func TestEncodeJSONEmptyPayload(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{Endpoint: "/api/ping", Method: http.MethodPost})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(req.Body))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestEncodeJSONKeepsNumbersAndNull(t *testing.T) {
	assert.Equal(t, `12345678901234567890`, string(EmbedJSON(" 12345678901234567890 ")))
	assert.Equal(t, `null`, string(EmbedJSON("null")))
	assert.Equal(t, `{"b":[1,2]}`, string(EmbedJSON("{\n  \"b\": [1, 2]\n}")))
	assert.Equal(t, `"two values"`, string(EmbedJSON("two values")))
}

func TestEncodeGETUsesQuery(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{
		Endpoint:   "/api/search",
		Method:     http.MethodGet,
		InputTypes: []Modality{ModalityText},
		Text:       "cats & dogs",
	})
	require.NoError(t, err)
	assert.Nil(t, req.Body)
	assert.Equal(t, "cats & dogs", req.Query.Get("text"))
	assert.Empty(t, req.Header.Get("Content-Type"))

	req, err = EncodeRequest(RequestPayload{Endpoint: "/", Method: http.MethodGet})
	require.NoError(t, err)
	assert.Nil(t, req.Query)
}

// GET with a file modality is a precondition violation; the encoder sends a
// bare query and drops the unsupported inputs.
func TestEncodeGETWithFileModalityDropsInputs(t *testing.T) {
	p := RequestPayload{
		Endpoint:   "/api/odd",
		Method:     http.MethodGet,
		InputTypes: []Modality{ModalityFile},
		JSON:       `{"a":1}`,
		Files:      []File{{Name: "a.txt", Data: []byte("a")}},
	}
	assert.Equal(t, EncodingQuery, p.Encoding())
	assert.ErrorIs(t, p.Validate(), ErrInvalidPayload)

	req, err := EncodeRequest(p)
	require.NoError(t, err)
	assert.Nil(t, req.Body)
	assert.Nil(t, req.Query)
}

func TestQuoteEscapedFilename(t *testing.T) {
	req, err := EncodeRequest(RequestPayload{
		Endpoint:   "/u",
		Method:     http.MethodPost,
		InputTypes: []Modality{ModalityFile},
		Files:      []File{{Name: `we"ird.txt`, Data: []byte("x")}},
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(req.Body), `filename="we\"ird.txt"`))
}
