package objectstore

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

// MemoryBucketService keeps objects in process memory. It backs local runs
// without cloud credentials and the service tests.
type MemoryBucketService struct {
	mu            sync.RWMutex
	objects       map[string][]byte
	publicBaseURL string
}

func NewMemoryBucketService(publicBaseURL string) *MemoryBucketService {
	if publicBaseURL == "" {
		publicBaseURL = "memory://objects"
	}
	return &MemoryBucketService{objects: map[string][]byte{}, publicBaseURL: publicBaseURL}
}

func objectID(category BucketCategory, key string) string {
	return string(category) + "/" + key
}

func (m *MemoryBucketService) UploadFile(dbc dbctx.Context, category BucketCategory, key string, file io.Reader) error {
	if _, err := ParseBucketCategory(string(category)); err != nil {
		return err
	}
	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	m.mu.Lock()
	m.objects[objectID(category, key)] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryBucketService) DeleteFile(dbc dbctx.Context, category BucketCategory, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := objectID(category, key)
	if _, ok := m.objects[id]; !ok {
		return fmt.Errorf("object %q not found", id)
	}
	delete(m.objects, id)
	return nil
}

func (m *MemoryBucketService) GetPublicURL(category BucketCategory, key string) string {
	return joinURL(m.publicBaseURL, string(category), key)
}

// Get returns a copy of the stored object.
func (m *MemoryBucketService) Get(category BucketCategory, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.objects[objectID(category, key)]
	if !ok {
		return nil, false
	}
	return bytes.Clone(raw), true
}

func (m *MemoryBucketService) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
