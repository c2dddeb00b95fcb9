package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is a small key/value store holding raw JSON documents.
// Get returns nil, nil when the key does not exist.
type Store interface {
	Get(key string) (json.RawMessage, error)
	Set(key string, value json.RawMessage) error
	Delete(key string) error
	List() ([]EntryInfo, error)
}

// EntryInfo represents metadata about a stored entry
type EntryInfo struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var cleanKeyRe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func cleanKey(key string) string {
	return cleanKeyRe.ReplaceAllString(key, "")
}

// FileStore keeps one pretty-printed JSON file per key in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory backing the store
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) ensureDir() error {
	return os.MkdirAll(s.dir, 0755)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, cleanKey(key)+".json")
}

// Get retrieves a value by key, returns nil if not found
func (s *FileStore) Get(key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return json.RawMessage(data), nil
}

// Set stores a value by key
func (s *FileStore) Set(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}

	// Pretty-print for readability
	var parsed any
	if err := json.Unmarshal(value, &parsed); err == nil {
		if pretty, err := json.MarshalIndent(parsed, "", "  "); err == nil {
			value = pretty
		}
	}

	// Write through a temp file so readers never see a half-written entry
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete removes a value by key
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns all entries, most recently updated first
func (s *FileStore) List() ([]EntryInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var infos []EntryInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, EntryInfo{
			ID:        strings.TrimSuffix(entry.Name(), ".json"),
			UpdatedAt: info.ModTime(),
		})
	}

	sortNewestFirst(infos)
	return infos, nil
}

func sortNewestFirst(infos []EntryInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].UpdatedAt.Equal(infos[j].UpdatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
}

// SetJSON stores a Go value as JSON by key
func SetJSON(s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.Set(key, json.RawMessage(data))
}

// GetJSON retrieves a JSON value and unmarshals into target.
// It reports whether the key existed.
func GetJSON(s Store, key string, target any) (bool, error) {
	data, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	return true, json.Unmarshal(data, target)
}
