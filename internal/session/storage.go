package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoStoredToken signals that the storage holds no credential. Restore
// treats it as "start signed out", never as a failure.
var ErrNoStoredToken = errors.New("session: no stored token")

// TokenStorage persists the bearer token between runs. Implementations must
// tolerate concurrent use from a single process.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStorage keeps the token in process memory only. It backs tests
// and hosts that opt out of persistence.
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStorage returns an empty in-memory storage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (s *MemoryTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoStoredToken
	}
	return s.token, nil
}

func (s *MemoryTokenStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileTokenStorage persists the token to a single file with owner-only
// permissions.
type FileTokenStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStorage builds a storage rooted at the given path. An empty
// path resolves to admin-token under the user config directory.
func NewFileTokenStorage(path string) (*FileTokenStorage, error) {
	if strings.TrimSpace(path) == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "portfolio", "admin-token")
	}
	return &FileTokenStorage{path: path}, nil
}

// Path returns the resolved token file location.
func (s *FileTokenStorage) Path() string { return s.path }

func (s *FileTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoStoredToken
	}
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNoStoredToken
	}
	return token, nil
}

func (s *FileTokenStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
