// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package localstore caches the hub session in a local YAML file so later
// invocations can log in without credentials.
package localstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/hubauth/internal/auth"
	"github.com/holomush/hubauth/internal/xdg"
)

// record is the on-disk layout of the session file.
type record struct {
	AccessToken string    `yaml:"access_token"`
	TokenType   string    `yaml:"token_type"`
	UUID        string    `yaml:"uuid"`
	Email       string    `yaml:"email,omitempty"`
	SavedAt     time.Time `yaml:"saved_at"`
}

// Store is a file-backed session cache.
type Store struct {
	path string
	now  func() time.Time
}

// New creates a Store for the file at path. The file need not exist yet.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, oops.Errorf("session file path is required")
	}
	return &Store{path: path, now: time.Now}, nil
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// LoadSession reads the cached session.
// A missing file yields the zero Session and a nil error.
func (s *Store) LoadSession(_ context.Context) (auth.Session, string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return auth.Session{}, "", nil
	}
	if err != nil {
		return auth.Session{}, "", oops.Code("LOCALSTORE_READ_FAILED").
			With("path", s.path).
			Wrap(err)
	}

	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return auth.Session{}, "", oops.Code("LOCALSTORE_CORRUPT").
			With("path", s.path).
			Wrap(err)
	}

	sess := auth.Session{AccessToken: rec.AccessToken, TokenType: rec.TokenType, UUID: rec.UUID}
	if !sess.Valid() {
		return auth.Session{}, "", oops.Code("LOCALSTORE_CORRUPT").
			With("path", s.path).
			Errorf("session file is incomplete")
	}
	return sess, rec.Email, nil
}

// SaveSession writes sess to the session file, replacing any previous one.
// The file is written to a temporary sibling first and renamed into place.
func (s *Store) SaveSession(_ context.Context, sess auth.Session, email string) error {
	if !sess.Valid() {
		return oops.Code("LOCALSTORE_INVALID_SESSION").Errorf("refusing to save an incomplete session")
	}

	data, err := yaml.Marshal(record{
		AccessToken: sess.AccessToken,
		TokenType:   sess.TokenType,
		UUID:        sess.UUID,
		Email:       email,
		SavedAt:     s.now().UTC(),
	})
	if err != nil {
		return oops.Code("LOCALSTORE_ENCODE_FAILED").Wrap(err)
	}

	dir := filepath.Dir(s.path)
	if err := xdg.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return oops.Code("LOCALSTORE_WRITE_FAILED").With("path", s.path).Wrap(err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return oops.Code("LOCALSTORE_WRITE_FAILED").With("path", tmpName).Wrap(err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return oops.Code("LOCALSTORE_WRITE_FAILED").With("path", tmpName).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return oops.Code("LOCALSTORE_WRITE_FAILED").With("path", tmpName).Wrap(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return oops.Code("LOCALSTORE_WRITE_FAILED").With("path", s.path).Wrap(err)
	}
	return nil
}

// RemoveSession deletes the session file. A missing file is not an error.
func (s *Store) RemoveSession(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return oops.Code("LOCALSTORE_REMOVE_FAILED").With("path", s.path).Wrap(err)
	}
	return nil
}
