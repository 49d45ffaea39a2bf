package memory

import (
	"sync"

	"github.com/akurlov/shortly/internal/store"
)

type MemoryStorage struct {
	mux  *sync.Mutex
	data []byte
}

func NewMemoryStorage(data []byte) (*MemoryStorage, error) {
	return &MemoryStorage{
		mux:  &sync.Mutex{},
		data: data,
	}, nil
}

func (s *MemoryStorage) Load() ([]byte, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.data == nil {
		return nil, store.ErrNotFound
	}
	return s.data, nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStorage) Ping() error {
	return nil
}

func (s *MemoryStorage) Close() {}
