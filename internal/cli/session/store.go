package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/investmateai/imctl/internal/cli/types"
)

// Store persists a single credential across process restarts.
// Implementations must treat a missing credential as (nil, nil), not an error.
type Store interface {
	Load() (*types.Credential, error)
	Save(cred *types.Credential) error
	Clear() error
}

// FileStore keeps the credential in a JSON file under the user's home
// directory (0600, user read/write only).
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the well-known credential file location (~/.imctl/credentials.json)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".imctl", "credentials.json"), nil
}

// Load reads the persisted credential, if any
func (s *FileStore) Load() (*types.Credential, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	var cred types.Credential
	if err := sonic.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("failed to parse credential file: %w", err)
	}
	if cred.AccessToken == "" {
		return nil, nil
	}

	return &cred, nil
}

// Save writes the credential to durable storage
func (s *FileStore) Save(cred *types.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	data, err := sonic.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}

	return nil
}

// Clear removes the persisted credential
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.Mutex
	cred *types.Credential
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns the stored credential, if any
func (s *MemStore) Load() (*types.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

// Save stores a copy of the credential
func (s *MemStore) Save(cred *types.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cred
	s.cred = &c
	return nil
}

// Clear drops the stored credential
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
