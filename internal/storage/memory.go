package storage

import (
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-process Store, used when no cache directory is wanted.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   json.RawMessage
	updated time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}}
}

func (s *MemoryStore) Get(key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *MemoryStore) Set(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make(json.RawMessage, len(value))
	copy(v, value)
	s.entries[key] = memoryEntry{value: v, updated: time.Now()}
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) List() ([]EntryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]EntryInfo, 0, len(s.entries))
	for k, e := range s.entries {
		infos = append(infos, EntryInfo{ID: k, UpdatedAt: e.updated})
	}
	sortNewestFirst(infos)
	return infos, nil
}
