package source

import (
	"context"
	"sync"

	"mosaic-hq/configurator/pkg/catalog"
)

// MemorySource serves descriptors held in memory. It exists for embedding
// catalogs and for tests.
type MemorySource struct {
	mu    sync.RWMutex
	descs []*catalog.Descriptor
}

// NewMemorySource creates a source pre-loaded with the given descriptors.
func NewMemorySource(descs ...*catalog.Descriptor) *MemorySource {
	return &MemorySource{descs: descs}
}

// Load implements Source.
func (s *MemorySource) Load(ctx context.Context) ([]*catalog.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.descs) == 0 {
		return nil, ErrNoCatalogs
	}
	out := make([]*catalog.Descriptor, len(s.descs))
	copy(out, s.descs)
	return out, nil
}

// Replace swaps the held descriptors.
func (s *MemorySource) Replace(descs ...*catalog.Descriptor) {
	s.mu.Lock()
	s.descs = descs
	s.mu.Unlock()
}
