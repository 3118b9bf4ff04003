// Package session is the single source of truth for the client's
// authentication state. At most one credential is active at a time; an absent
// credential is the valid anonymous state, not an error.
package session

import (
	"sync"

	"github.com/investmateai/imctl/internal/cli/types"
)

// Session pairs the in-memory credential with durable storage. Every mutation
// updates both within the same operation so a reload never observes one
// without the other.
type Session struct {
	mu    sync.Mutex
	store Store
	cred  *types.Credential
}

// Restore builds a session from whatever credential the store holds.
// No network call is made to validate it; validity is discovered lazily when
// a privileged request is rejected.
func Restore(store Store) (*Session, error) {
	cred, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, cred: cred}, nil
}

// Login installs the credential in memory and durable storage.
func (s *Session) Login(cred types.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(&cred); err != nil {
		return err
	}
	s.cred = &cred
	return nil
}

// Logout clears the credential from memory and durable storage.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return err
	}
	s.cred = nil
	return nil
}

// Token returns the bearer token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.AccessToken
}

// Credential returns a copy of the active credential, or nil when anonymous
func (s *Session) Credential() *types.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil
	}
	c := *s.cred
	return &c
}

// Authenticated reports whether a credential is installed
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
