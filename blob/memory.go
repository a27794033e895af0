package blob

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps blobs in process memory. URLs are the configured prefix
// followed by the blob id, e.g. "/blobs/<id>".
type MemoryStore struct {
	mu     sync.RWMutex
	prefix string
	blobs  map[string]*Handle
}

func NewMemoryStore(prefix string) *MemoryStore {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &MemoryStore{
		prefix: prefix,
		blobs:  make(map[string]*Handle),
	}
}

func (s *MemoryStore) Create(data []byte, mimeType, filename string) (*Handle, error) {
	id := uuid.NewString()
	h := &Handle{
		ID:       id,
		URL:      s.prefix + id,
		MimeType: mimeType,
		Filename: filename,
		data:     data,
		store:    s,
	}

	s.mu.Lock()
	s.blobs[id] = h
	s.mu.Unlock()
	return h, nil
}

func (s *MemoryStore) Get(id string) (*Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, nil
}

func (s *MemoryStore) Release(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.blobs, id)
	return nil
}

// Len reports the number of live blobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
