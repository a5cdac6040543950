package storage

import (
	"fmt"
	"slices"
	"sync"
)

// MemoryStore is a Storer that never touches disk. Keys keep insertion order,
// which lets loaders preserve the order rows appeared in their source.
type MemoryStore[T ValidatingSpec] struct {
	mu      sync.RWMutex
	keys    []string
	records map[string]T
}

func NewMemoryStore[T ValidatingSpec]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]T{}}
}

// Save validates and stores spec under id.
func (s *MemoryStore[T]) Save(id string, spec T) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		s.keys = append(s.keys, id)
	}
	s.records[id] = spec
	return nil
}

func (s *MemoryStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

// Keys returns ids in the order they were first saved.
func (s *MemoryStore[T]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.keys)
}
