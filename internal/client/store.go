package client

import (
	"errors"
	"os"
	"sync"
)

// CredentialStore persists the bearer token between runs. Load returns an
// empty string when nothing is stored. Concurrent writers follow
// last-write-wins.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStore keeps the token in process memory
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileStore keeps the token in a single file, created 0600
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a credential store backed by the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
