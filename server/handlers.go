package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/aiweb/blob"
	"github.com/aiweb/catalog"
	"github.com/aiweb/codec"
	"github.com/aiweb/logger"
	"github.com/aiweb/transport"
	"github.com/aiweb/validate"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

// Caller performs one marshaled endpoint call.
type Caller interface {
	Call(ctx context.Context, p codec.RequestPayload) (*codec.ParsedResponse, error)
}

// API backs the browser page: endpoint docs, calls and blob downloads.
type API struct {
	log       *logger.Logger
	caller    Caller
	catalog   *catalog.Catalog
	blobs     blob.Store
	maxUpload int64
}

func NewAPI(caller Caller, cat *catalog.Catalog, blobs blob.Store, maxUpload int64) *API {
	return &API{
		log:       logger.NewLogger("API", uuid.NewString()),
		caller:    caller,
		catalog:   cat,
		blobs:     blobs,
		maxUpload: maxUpload,
	}
}

type endpointDoc struct {
	catalog.Endpoint
	Detail string `json:"detail"`
}

type callEnvelope struct {
	OK       bool                  `json:"ok"`
	Result   *codec.ParsedResponse `json:"result,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	Error    string                `json:"error,omitempty"`
	Status   int                   `json:"status,omitempty"`
}

func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeAsset(w, "text/html; charset=utf-8", uiIndexHTML)
}

func (a *API) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeAsset(w, "text/css; charset=utf-8", uiStylesCSS)
}

func (a *API) handleScript(w http.ResponseWriter, r *http.Request) {
	writeAsset(w, "text/javascript; charset=utf-8", uiAppJS)
}

func (a *API) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	endpoints := a.catalog.List()
	docs := make([]endpointDoc, 0, len(endpoints))
	for _, e := range endpoints {
		docs = append(docs, endpointDoc{Endpoint: e, Detail: catalog.Render(e)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": docs})
}

func (a *API) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	e, err := a.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": endpointDoc{Endpoint: e, Detail: catalog.Render(e)}})
}

func (a *API) handleCall(w http.ResponseWriter, r *http.Request) {
	e, err := a.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, callEnvelope{Error: err.Error()})
		return
	}

	text, rawJSON, files, err := a.readForm(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, callEnvelope{Error: err.Error()})
		return
	}

	warnings := validate.CheckJSONInput(e.Schema, rawJSON)
	res, err := a.caller.Call(r.Context(), e.Payload(text, rawJSON, files))
	if err != nil {
		env := callEnvelope{Warnings: warnings, Error: err.Error()}
		var terr *transport.Error
		switch {
		case errors.Is(err, codec.ErrInvalidPayload):
			writeJSON(w, http.StatusBadRequest, env)
		case errors.As(err, &terr):
			env.Status = terr.StatusCode
			status := http.StatusBadGateway
			if terr.Timeout() {
				status = http.StatusGatewayTimeout
			}
			writeJSON(w, status, env)
		default:
			writeJSON(w, http.StatusInternalServerError, env)
		}
		return
	}

	writeJSON(w, http.StatusOK, callEnvelope{OK: true, Result: res, Warnings: warnings})
}

// readForm accepts multipart or urlencoded bodies. Files are only present in
// the multipart case and keep the order the browser sent them in.
func (a *API) readForm(w http.ResponseWriter, r *http.Request) (string, string, []codec.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)

	err := r.ParseMultipartForm(a.maxUpload)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return "", "", nil, fmt.Errorf("failed to parse form: %w", err)
		}
		return r.FormValue(codec.FieldText), r.FormValue(codec.FieldJSON), nil, nil
	}
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	var files []codec.File
	for _, fh := range r.MultipartForm.File[codec.FieldFiles] {
		f, err := readFile(fh)
		if err != nil {
			return "", "", nil, err
		}
		files = append(files, f)
	}
	return r.FormValue(codec.FieldText), r.FormValue(codec.FieldJSON), files, nil
}

func readFile(fh *multipart.FileHeader) (codec.File, error) {
	src, err := fh.Open()
	if err != nil {
		return codec.File{}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return codec.File{}, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return codec.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

func (a *API) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	h, err := a.blobs.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", h.MimeType)
	w.Header().Set("Cache-Control", "no-store")
	if h.Filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": h.Filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.Bytes())
}

func (a *API) handleDeleteBlob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.blobs.Release(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, blob.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	a.log.Debug(fmt.Sprintf("released blob %s", id))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeAsset(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	b, err := json.Marshal(v)
	if err != nil {
		_, _ = w.Write([]byte(`{"ok":false,"error":"failed to marshal json"}`))
		return
	}
	_, _ = w.Write(append(b, '\n'))
}
