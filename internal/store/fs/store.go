package fs

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/akurlov/shortly/internal/store"
)

const FileStorageFilePerm = 0600

// FSStorage keeps the whole document in a single file. Every Save
// rewrites the file through a temp-file rename so an interrupted write
// leaves the previous document intact, never a truncated one.
type FSStorage struct {
	mux  *sync.Mutex
	path string
}

func NewFileStorage(filename string) (*FSStorage, error) {
	return &FSStorage{
		mux:  &sync.Mutex{},
		path: filename,
	}, nil
}

func (s *FSStorage) Load() ([]byte, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error reading storage file: %w", err)
	}

	return data, nil
}

func (s *FSStorage) Save(data []byte) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, FileStorageFilePerm); err != nil {
		return fmt.Errorf("error writing storage file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing storage file: %w", err)
	}

	return nil
}

func (s *FSStorage) Ping() error {
	return nil
}

func (s *FSStorage) Close() {}

func (s *FSStorage) DeleteStorageFile() error {
	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("error delete file: %w", err)
	}
	return nil
}
