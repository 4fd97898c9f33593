package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MasCreaThor/plataforma/internal/api"
)

// credentialsFile is the on-disk shape. The two key names are fixed: they
// are the storage contract every version of the platform client has used,
// and their absence means "not logged in".
type credentialsFile struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// FileStore persists the token pair as a JSON file, mode 0600.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ api.TokenStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored pair. A missing file is not an error: it is the
// unauthenticated state.
func (s *FileStore) Load() (api.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return api.Credentials{}, nil
		}
		return api.Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return api.Credentials{}, fmt.Errorf("parse credentials file: %w", err)
	}
	return api.Credentials{AccessToken: file.Token, RefreshToken: file.RefreshToken}, nil
}

func (s *FileStore) Save(creds api.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(credentialsFile{
		Token:        creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	// Write to a sibling temp file and rename over the target, so an
	// interrupted write never leaves a truncated credentials file behind.
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("create credentials temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod credentials file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}

// Clear removes the stored pair. Clearing an absent file is a no-op.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

// MemoryStore keeps the pair in memory only. Used by tests and by
// commands that must never touch the real credentials file.
type MemoryStore struct {
	mu    sync.Mutex
	creds api.Credentials
}

var _ api.TokenStore = (*MemoryStore)(nil)

func NewMemoryStore(creds api.Credentials) *MemoryStore {
	return &MemoryStore{creds: creds}
}

func (s *MemoryStore) Load() (api.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(creds api.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = api.Credentials{}
	return nil
}
