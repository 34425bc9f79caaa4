// internal/repository/kv_store.go
package repository

import (
	"context"
	"slices"
	"sync"
)

// KVStore is the persistence collaborator: a flat namespace of keys holding
// opaque serialized values. Get reports found=false for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryKVStore keeps values in process memory. Nothing survives a restart.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		values: make(map[string][]byte),
	}
}

func (s *MemoryKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

func (s *MemoryKVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

func (s *MemoryKVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
