package commands

import (
	"fmt"

	"github.com/investmateai/imctl/internal/cli/client"
	"github.com/investmateai/imctl/internal/cli/session"
)

// restoreSession restores the persisted session. An absent credential yields
// a valid anonymous session, not an error.
func restoreSession() (*session.Session, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	return session.Restore(session.NewFileStore(path))
}

// newClient builds a gateway against the configured server, consulting the
// session for the optional credential.
func newClient(server string, sess *session.Session) (*client.Client, error) {
	apiClient, err := client.New(server, sess)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return apiClient, nil
}
