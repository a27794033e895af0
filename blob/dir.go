package blob

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// DirStore writes each blob to its own file in a directory and hands out
// file:// URLs. Release deletes the file.
type DirStore struct {
	mu    sync.Mutex
	dir   string
	blobs map[string]*Handle
	paths map[string]string
}

func NewDirStore(dir string) (*DirStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve blob dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &DirStore{
		dir:   abs,
		blobs: make(map[string]*Handle),
		paths: make(map[string]string),
	}, nil
}

func (s *DirStore) Create(data []byte, mimeType, filename string) (*Handle, error) {
	id := uuid.NewString()
	path := filepath.Join(s.dir, id+extension(mimeType, filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	h := &Handle{
		ID:       id,
		URL:      (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(),
		MimeType: mimeType,
		Filename: filename,
		data:     data,
		store:    s,
	}

	s.mu.Lock()
	s.blobs[id] = h
	s.paths[id] = path
	s.mu.Unlock()
	return h, nil
}

func (s *DirStore) Get(id string) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, nil
}

func (s *DirStore) Release(id string) error {
	s.mu.Lock()
	path, ok := s.paths[id]
	delete(s.blobs, id)
	delete(s.paths, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob file: %w", err)
	}
	return nil
}

// Path returns the file backing a live blob.
func (s *DirStore) Path(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paths[id]
	return p, ok
}

func extension(mimeType, filename string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
