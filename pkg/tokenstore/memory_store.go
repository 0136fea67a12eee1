package tokenstore

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps tokens in process memory. Suited to tests and to
// short-lived CLI sessions where persistence across runs is not wanted.
type MemoryStore struct {
	c *gocache.Cache
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(key string) (string, error) {
	if v, found := s.c.Get(key); found {
		if str, ok := v.(string); ok {
			return str, nil
		}
	}
	return "", nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.c.Set(key, value, gocache.NoExpiration)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.c.Delete(key)
	return nil
}
