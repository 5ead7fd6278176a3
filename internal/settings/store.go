package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no settings document exists for a user
var ErrNotFound = errors.New("settings not found")

// Store reads and upserts settings documents keyed by user identifier
type Store interface {
	Load(userID string) (*Settings, error)
	Save(userID string, s *Settings) error
	Path(userID string) string
}

// FileStore keeps one JSON document per user under the taskpurge home
// directory (~/.taskpurge by default, TASKPURGE_HOME overrides).
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at the taskpurge home directory
func NewFileStore() (*FileStore, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// NewFileStoreAt creates a store rooted at a specific directory (tests)
func NewFileStoreAt(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// HomeDir returns the taskpurge config directory path (~/.taskpurge,
// TASKPURGE_HOME overrides). The rules file lives here too.
func HomeDir() (string, error) {
	if v := os.Getenv("TASKPURGE_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskpurge"), nil
}

// Path returns the settings file path for a user
func (fs *FileStore) Path(userID string) string {
	return filepath.Join(fs.dir, fmt.Sprintf("settings-%s.json", userID))
}

// Load reads the settings document for a user
func (fs *FileStore) Load(userID string) (*Settings, error) {
	data, err := os.ReadFile(fs.Path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	return &s, nil
}

// Save upserts the settings document for a user
func (fs *FileStore) Save(userID string, s *Settings) error {
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// 0600: the document carries API credentials
	return os.WriteFile(fs.Path(userID), data, 0600)
}
