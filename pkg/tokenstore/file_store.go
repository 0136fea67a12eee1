package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists tokens as a small JSON file, the durable analogue of
// the mobile client's keychain-backed storage. Writes go through a temp
// file and rename so a crash never leaves a half-written credential pair.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = &FileStore{}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	delete(data, key)
	return s.save(data)
}

func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt file is treated as empty rather than bricking auth.
		return map[string]string{}, nil
	}
	return data, nil
}

func (s *FileStore) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
