package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path under which local blobs are served.
const PublicPrefix = "/uploads"

// LocalStore keeps blobs on disk below root.
type LocalStore struct {
	root string
}

// NewLocalStore creates root (and parents) if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Root is the directory served at PublicPrefix.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(_ context.Context, key string, content []byte, _ string) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := writeBytesToFile(path, content); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + filepath.ToSlash(key), nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, PublicPrefix+"/")
	if !ok {
		return nil
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
