package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/knowledge-engine/tweetsift/internal/feature"
)

// TableStorage defines the interface for persisting built feature tables.
// Persistence is a caching convenience; the pipeline never requires it.
type TableStorage interface {
	Save(name string, t feature.Table) error
	Load(name string) (feature.Table, error)
	Close() error
}

// FileStorage implements TableStorage on the local file system, one JSON
// file per table
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates the storage directory if needed
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{baseDir: baseDir}, nil
}

// Save writes the table to <baseDir>/<name>.json
func (fs *FileStorage) Save(name string, t feature.Table) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	path := filepath.Join(fs.baseDir, safeFilename(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// Load reads a previously saved table
func (fs *FileStorage) Load(name string) (feature.Table, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path := filepath.Join(fs.baseDir, safeFilename(name))
	data, err := os.ReadFile(path)
	if err != nil {
		return feature.Table{}, fmt.Errorf("failed to read table: %w", err)
	}

	var t feature.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return feature.Table{}, fmt.Errorf("failed to unmarshal table: %w", err)
	}
	return t, nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}

// safeFilename keeps alphanumeric characters and replaces the rest
func safeFilename(name string) string {
	safe := make([]rune, 0, len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			safe = append(safe, r)
		} else {
			safe = append(safe, '_')
		}
	}
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return string(safe) + ".json"
}
