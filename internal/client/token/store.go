// Package token persists the single authorization token of the client.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Key is the fixed slot the token is stored under.
const Key = "six-cities-token"

// Store keeps at most one token. Expiry is decided by the server and is
// only observed through failed authorized requests.
type Store interface {
	// Save persists token, replacing any previous one.
	Save(ctx context.Context, token string) error
	// Drop removes the token. Dropping an absent token is not an error.
	Drop(ctx context.Context) error
	// Load returns the token or "" when none is stored.
	Load(ctx context.Context) (string, error)
}

// FileStore keeps the token in a JSON file so it survives restarts.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the token under Key.
func (s *FileStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	data[Key] = token
	return s.write(data)
}

// Drop removes Key from the file, deleting the file once it is empty.
func (s *FileStore) Drop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data[Key]; !ok {
		return nil
	}
	delete(data, Key)
	if len(data) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove token file: %w", err)
		}
		return nil
	}
	return s.write(data)
}

// Load reads the token; a missing file means no token.
func (s *FileStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", err
	}
	return data[Key], nil
}

func (s *FileStore) read() (map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()

	data := map[string]string{}
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return data, nil
}

func (s *FileStore) write(data map[string]string) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
