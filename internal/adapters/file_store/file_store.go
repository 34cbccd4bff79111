package file_store

import (
	"fmt"
	"os"
	"path/filepath"

	"autofinder-client/internal/core/port"
)

// FileStoreAdapter — персистентное хранилище на локальном файле.
// Запись идет через временный файл и rename, чтобы не оставить
// полузаписанное содержимое при сбое.
type FileStoreAdapter struct {
	path string
}

var _ port.KeyValueStorePort = (*FileStoreAdapter)(nil)

func NewFileStoreAdapter(path string) *FileStoreAdapter {
	return &FileStoreAdapter{path: path}
}

func (s *FileStoreAdapter) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return data, true, nil
}

func (s *FileStoreAdapter) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
