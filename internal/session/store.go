package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// State is the persisted session payload: the opaque token string and nothing
// else. Identity is always re-derived from the token on load.
type State struct {
	Token string `json:"token"`
}

// Store abstracts persistence for session state.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// FileStore writes session state to a JSON file on disk. Writes are guarded by
// a sibling lock file so overlapping CLI invocations cannot interleave.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore builds a FileStore rooted at the provided path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load reads session state from disk. A missing file resolves to an empty
// state, and so does an unreadable one: the state file is a cache of a
// credential the server can reissue, never worth failing startup over.
func (s *FileStore) Load() (State, error) {
	if err := s.lock.RLock(); err != nil {
		return State{}, fmt.Errorf("lock session state: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read session state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, nil
	}
	return state, nil
}

// Save persists session state to disk with restricted permissions. An empty
// state removes the file entirely.
func (s *FileStore) Save(state State) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session state: %w", err)
	}
	defer s.lock.Unlock()

	if state.Token == "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session state: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure session state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
