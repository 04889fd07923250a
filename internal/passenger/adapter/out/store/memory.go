package store

import (
	"context"
	"sync"

	"letsgo/internal/passenger/domain"
)

// MemoryStore: хранилище в памяти процесса (dev, тесты)
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, deviceID, key string) (string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[deviceID][key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, deviceID, key, value string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.data[deviceID]
	if !ok {
		m = make(map[string]string)
		s.data[deviceID] = m
	}
	m[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, deviceID, key string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[deviceID], key)
	if len(s.data[deviceID]) == 0 {
		delete(s.data, deviceID)
	}
	return nil
}
