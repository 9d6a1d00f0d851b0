package winstate

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFile is the state file name used when none is configured.
const DefaultFile = "window-state.json"

// Storage reads and writes the raw persisted record.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Location() string
}

// FileStorage keeps the record in a single JSON file.
type FileStorage struct {
	Dir  string
	Name string
}

var _ Storage = FileStorage{}

// NewFileStorage returns storage for dir/name. An empty name means DefaultFile.
func NewFileStorage(dir, name string) FileStorage {
	if name == "" {
		name = DefaultFile
	}
	return FileStorage{Dir: dir, Name: name}
}

// Location returns the full path of the state file.
func (s FileStorage) Location() string {
	return filepath.Join(s.Dir, s.Name)
}

func (s FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(s.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to read window state: %w", err)
	}
	return data, nil
}

// Save writes data, creating the parent directory when missing.
func (s FileStorage) Save(data []byte) error {
	path := s.Location()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write window state %q: %w", path, err)
	}
	return nil
}
