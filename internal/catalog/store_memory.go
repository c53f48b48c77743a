package catalog

import (
	"context"
	"sync"
)

// MemStore keeps the encoded document in process memory.
type MemStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Read(ctx context.Context) ([]Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		data, err := encodeBundles(nil)
		if err != nil {
			return nil, err
		}
		s.data = data
	}
	return decodeBundles(s.data)
}

func (s *MemStore) Write(ctx context.Context, bundles []Bundle) error {
	if err := ctx.Err(); err != nil {
		return &StoreError{Op: "write", Err: err}
	}

	data, err := encodeBundles(bundles)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Bytes returns a copy of the stored document, or nil before first use.
func (s *MemStore) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	return append([]byte(nil), s.data...)
}
