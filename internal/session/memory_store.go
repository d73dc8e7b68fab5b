package session

import (
    "context"
    "sync"
)

type memoryStore struct {
    mu     sync.RWMutex
    values map[string][]byte
}

// NewMemoryStore builds an in-process store for tests and local development.
func NewMemoryStore() Store {
    return &memoryStore{values: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    v, ok := s.values[key]
    if !ok {
        return nil, ErrNotFound
    }
    return append([]byte(nil), v...), nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.values[key] = append([]byte(nil), value...)
    return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.values, key)
    return nil
}
