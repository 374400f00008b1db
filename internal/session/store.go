// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tellerdesk/teller-tui/internal/model"
	"github.com/tellerdesk/teller-tui/internal/util"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// Store reads and writes the persisted session record.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the default session file location,
// ~/.teller/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".teller", "session.json"), nil
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. The second return value reports
// whether a usable session was found. A missing file is not an error;
// a corrupt file is removed and reported as absent.
func (s *Store) Load() (*model.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Unparseable state is worse than no state. Drop it so the
		// next start is clean.
		os.Remove(s.path)
		return nil, false, nil
	}

	if sess.SessionID == "" || !sess.Role.Valid() {
		os.Remove(s.path)
		return nil, false, nil
	}

	return &sess, true, nil
}

// Save replaces the persisted session wholesale.
func (s *Store) Save(sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
