package auth

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"steeldesk/pkg/models"
)

// Session is the persisted login state: the opaque bearer token plus the
// normalized user returned at login. It is the CLI's analogue of the
// browser's localStorage entries.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// sessionStore reads and writes the session file. The file holds secrets, so
// it is created 0600 and its parent directory 0700.
type sessionStore struct {
	path string
}

func (s *sessionStore) load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is the same as no session.
		return nil, nil
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

func (s *sessionStore) save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *sessionStore) clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
