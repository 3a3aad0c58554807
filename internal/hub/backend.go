// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hub

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/holomush/hubauth/internal/auth"
	"github.com/holomush/hubauth/pkg/errutil"
)

// SessionCache persists sessions between runs.
type SessionCache interface {
	SaveSession(ctx context.Context, session auth.Session, email string) error
	RemoveSession(ctx context.Context) error
}

// Backend implements auth.Backend on top of a hub Client and a local cache.
type Backend struct {
	client *Client
	cache  SessionCache
	logger *slog.Logger
}

var _ auth.Backend = (*Backend)(nil)

// NewBackend creates a Backend with a no-op logger.
func NewBackend(client *Client, cache SessionCache) (*Backend, error) {
	return NewBackendWithLogger(client, cache, slog.New(slog.DiscardHandler))
}

// NewBackendWithLogger creates a Backend with the provided logger.
func NewBackendWithLogger(client *Client, cache SessionCache, logger *slog.Logger) (*Backend, error) {
	if client == nil {
		return nil, oops.Errorf("hub client is required")
	}
	if cache == nil {
		return nil, oops.Errorf("session cache is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Backend{client: client, cache: cache, logger: logger}, nil
}

// CreateSession requests a session for an email/password pair and caches it
// when persist is true.
func (b *Backend) CreateSession(ctx context.Context, email, password string, persist bool) (auth.Session, error) {
	sess, err := b.client.CreateSession(ctx, email, password)
	if err != nil {
		return auth.Session{}, err
	}
	b.persist(ctx, sess, email, persist)
	return sess, nil
}

// CreateSessionFromToken requests a session for a token and caches it when
// persist is true.
func (b *Backend) CreateSessionFromToken(ctx context.Context, token string, persist bool) (auth.Session, error) {
	sess, err := b.client.CreateSessionFromToken(ctx, token)
	if err != nil {
		return auth.Session{}, err
	}
	b.persist(ctx, sess, "", persist)
	return sess, nil
}

// Login performs the login exchange.
func (b *Backend) Login(ctx context.Context, session auth.Session) auth.LoginStatus {
	status, err := b.client.FetchUser(ctx, session)
	if err != nil {
		errutil.LogError(b.logger, "hub login exchange failed", err)
	}
	return status
}

// Logout revokes the hub session (unless guest) and removes the cached one.
// The cache is cleared even when revocation fails; the first error is
// returned.
func (b *Backend) Logout(ctx context.Context, authHeader, token string, guest bool) error {
	var remoteErr error
	if !guest {
		remoteErr = b.client.DeleteSession(ctx, authHeader, token)
	}

	cacheErr := b.cache.RemoveSession(ctx)
	if remoteErr != nil {
		return remoteErr
	}
	return cacheErr
}

func (b *Backend) persist(ctx context.Context, sess auth.Session, email string, persist bool) {
	if !persist || !sess.Valid() {
		return
	}
	if err := b.cache.SaveSession(ctx, sess, email); err != nil {
		errutil.LogError(b.logger, "could not cache session", err)
		return
	}
	b.logger.DebugContext(ctx, "session cached", "uuid", sess.UUID)
}
