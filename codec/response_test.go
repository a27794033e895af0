package codec

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/aiweb/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x00, 0x00, 0x0d}

func headers(kv ...string) http.Header {
	h := make(http.Header)
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestDecodeJSON(t *testing.T) {
	d := NewDecoder(blob.NewMemoryStore("/blobs/"))
	body := `{"success":true,"result":"x"}`

	res := d.Decode([]byte(body), headers("Content-Type", "application/json; charset=utf-8"))
	require.Equal(t, KindJSON, res.Kind)
	assert.Equal(t, "application/json", res.MimeType)
	assert.Equal(t, body, res.Raw)
	assert.Nil(t, res.Blob)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "x", data["result"])
}

func TestDecodeJSONKeepsLargeNumbers(t *testing.T) {
	d := NewDecoder(nil)
	res := d.Decode([]byte(`{"id":12345678901234567890}`), headers("Content-Type", "application/json"))
	require.Equal(t, KindJSON, res.Kind)
	data := res.Data.(map[string]any)
	assert.Equal(t, json.Number("12345678901234567890"), data["id"])
}

func TestDecodeMalformedJSONFallsBackToText(t *testing.T) {
	d := NewDecoder(nil)
	for _, body := range []string{"not json", "", `{"a":1} trailing`} {
		res := d.Decode([]byte(body), headers("Content-Type", "application/json"))
		assert.Equal(t, KindText, res.Kind, body)
		assert.Equal(t, body, res.Data)
		assert.Equal(t, body, res.Raw)
		assert.Equal(t, "application/json", res.MimeType)
	}
}

func TestDecodeStructuredJSONSuffix(t *testing.T) {
	d := NewDecoder(nil)
	res := d.Decode([]byte(`{"title":"bad"}`), headers("Content-Type", "application/problem+json"))
	assert.Equal(t, KindJSON, res.Kind)
	assert.Equal(t, "application/problem+json", res.MimeType)
}

func TestDecodeText(t *testing.T) {
	d := NewDecoder(nil)
	res := d.Decode([]byte("\xef\xbb\xbfhello <b>"), headers("Content-Type", "text/html; charset=utf-8"))
	assert.Equal(t, KindText, res.Kind)
	assert.Equal(t, "hello <b>", res.Data)
	assert.Equal(t, "text/html", res.MimeType)
}

func TestDecodeTextInvalidUTF8(t *testing.T) {
	d := NewDecoder(nil)
	res := d.Decode([]byte{'o', 'k', 0xff}, headers("Content-Type", "text/plain"))
	assert.Equal(t, "ok\uFFFD", res.Data)
}

func TestDecodeImage(t *testing.T) {
	store := blob.NewMemoryStore("/blobs/")
	d := NewDecoder(store)

	res := d.Decode(pngBytes, headers("Content-Type", "image/png"))
	require.Equal(t, KindImage, res.Kind)
	assert.Equal(t, "image/png", res.MimeType)
	require.NotNil(t, res.Blob)
	assert.Equal(t, res.Blob.URL, res.Data)
	assert.True(t, strings.HasPrefix(res.Data.(string), "/blobs/"))
	assert.Equal(t, pngBytes, res.Blob.Bytes())
	assert.Equal(t, "", res.Filename)

	got, err := store.Get(res.Blob.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MimeType)

	require.NoError(t, res.Release())
	assert.Equal(t, 0, store.Len())
}

func TestDecodeFileWithFilename(t *testing.T) {
	d := NewDecoder(blob.NewMemoryStore("/blobs/"))
	res := d.Decode([]byte("%PDF-1.7"), headers(
		"Content-Type", "application/pdf",
		"Content-Disposition", `attachment; filename="report.pdf"`,
	))
	assert.Equal(t, KindFile, res.Kind)
	assert.Equal(t, "report.pdf", res.Filename)
	assert.Equal(t, "report.pdf", res.Blob.Filename)
	assert.Equal(t, "application/pdf", res.MimeType)
}

func TestDecodeMissingContentType(t *testing.T) {
	d := NewDecoder(blob.NewMemoryStore("/blobs/"))
	res := d.Decode([]byte{0x01, 0x02}, http.Header{})
	assert.Equal(t, KindFile, res.Kind)
	assert.Equal(t, DefaultMimeType, res.MimeType)
	assert.Equal(t, "application/octet-stream", res.MimeType)
}

func TestDecodeWithoutStoreUsesDataURL(t *testing.T) {
	d := NewDecoder(nil)
	res := d.Decode(pngBytes, headers("Content-Type", "image/png"))
	assert.Equal(t, KindImage, res.Kind)
	assert.True(t, strings.HasPrefix(res.Data.(string), "data:image/png;base64,"))
	assert.NoError(t, res.Release())
}

func TestDecodeIsIdempotent(t *testing.T) {
	d := NewDecoder(blob.NewMemoryStore("/blobs/"))
	cases := []struct {
		body []byte
		h    http.Header
	}{
		{[]byte(`{"a":[1,2]}`), headers("Content-Type", "application/json")},
		{[]byte("plain"), headers("Content-Type", "text/plain")},
		{pngBytes, headers("Content-Type", "image/png")},
		{[]byte("zip"), headers("Content-Type", "application/zip", "Content-Disposition", "attachment; filename=a.zip")},
	}
	for _, c := range cases {
		a := d.Decode(c.body, c.h)
		b := d.Decode(c.body, c.h)
		assert.Equal(t, a.Kind, b.Kind)
		assert.Equal(t, a.MimeType, b.MimeType)
		assert.Equal(t, a.Filename, b.Filename)
		if a.Blob != nil {
			assert.Equal(t, a.Blob.Bytes(), b.Blob.Bytes())
		} else {
			assert.Equal(t, a.Data, b.Data)
		}
	}
}

func TestResolveMimeType(t *testing.T) {
	assert.Equal(t, "application/octet-stream", ResolveMimeType(""))
	assert.Equal(t, "application/octet-stream", ResolveMimeType("   "))
	assert.Equal(t, "text/plain", ResolveMimeType("Text/Plain; charset=UTF-8"))
	assert.Equal(t, "application/json", ResolveMimeType("application/json;"))
	assert.Equal(t, "image/jpeg", ResolveMimeType("image/jpeg"))
}

func TestParsedResponseJSONShape(t *testing.T) {
	d := NewDecoder(blob.NewMemoryStore("/blobs/"))
	res := d.Decode([]byte("%PDF"), headers("Content-Type", "application/pdf", "Content-Disposition", `attachment; filename="r.pdf"`))

	out, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "file", m["type"])
	assert.Equal(t, res.Blob.URL, m["data"])
	assert.Equal(t, "r.pdf", m["filename"])
	assert.Equal(t, "application/pdf", m["mimeType"])
	assert.NotContains(t, m, "raw")
}
