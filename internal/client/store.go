package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store is the client's local key-value persistence, the stand-in for the
// host platform's storage API. Implementations must treat corrupt or
// missing data as absent; init paths never fail on bad local state.
type Store interface {
	// Get unmarshals the stored value for key into v and reports whether
	// a usable value existed.
	Get(key string, v interface{}) bool
	Set(key string, v interface{}) error
	Delete(key string)
}

// FileStore persists each key as one JSON file under a directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements Store
func (s *FileStore) Get(key string, v interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt local data reads as absent.
		return false
	}
	return true
}

// Set implements Store
func (s *FileStore) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

// Delete implements Store
func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path(key))
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get implements Store
func (s *MemStore) Get(key string, v interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Set implements Store
func (s *MemStore) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data[key] = data
	return nil
}

// Delete implements Store
func (s *MemStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
