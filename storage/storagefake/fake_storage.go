package storagefake

import (
	"sync"
)

// FakeStorage is an in-memory KeyValue. SetErr makes every later write fail,
// for exercising quota-style failures.
type FakeStorage struct {
	items  map[string]string
	writes int
	setErr error
	lock   sync.RWMutex
}

func New() *FakeStorage {
	return &FakeStorage{
		items: make(map[string]string),
	}
}

func (s *FakeStorage) GetItem(key string) (string, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *FakeStorage) SetItem(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.setErr != nil {
		return s.setErr
	}
	s.items[key] = value
	s.writes++
	return nil
}

func (s *FakeStorage) RemoveItem(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.items, key)
	return nil
}

// SetErr makes subsequent SetItem calls return err; nil clears it.
func (s *FakeStorage) SetErr(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.setErr = err
}

// Writes counts successful SetItem calls.
func (s *FakeStorage) Writes() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.writes
}
