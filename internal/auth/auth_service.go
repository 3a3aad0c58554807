// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/holomush/hubauth/pkg/errutil"
)

// Login sources, used for metrics and logs.
const (
	sourceLocal    = "local"
	sourceAcquired = "acquired"
)

// Service provides login, logout and session restore.
// It is the only writer of the UserState it was built with.
type Service struct {
	backend  Backend
	local    LocalSessionSource
	acquirer *Acquirer
	state    *UserState
	logger   *slog.Logger
}

// NewAuthService creates a new Service with a no-op logger.
func NewAuthService(backend Backend, local LocalSessionSource, state *UserState) (*Service, error) {
	return NewAuthServiceWithLogger(backend, local, state, slog.New(slog.DiscardHandler))
}

// NewAuthServiceWithLogger creates a new Service with the provided logger.
func NewAuthServiceWithLogger(backend Backend, local LocalSessionSource, state *UserState, logger *slog.Logger) (*Service, error) {
	if backend == nil {
		return nil, oops.Errorf("backend is required")
	}
	if local == nil {
		return nil, oops.Errorf("local session source is required")
	}
	if state == nil {
		return nil, oops.Errorf("user state is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	acquirer, err := NewAcquirerWithLogger(backend, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		backend:  backend,
		local:    local,
		acquirer: acquirer,
		state:    state,
		logger:   logger,
	}, nil
}

// State returns the user state managed by this service.
func (s *Service) State() *UserState {
	return s.state
}

// GetSession acquires a new session from the hub without logging in.
func (s *Service) GetSession(ctx context.Context, creds Credentials, persist bool) (Session, error) {
	return s.acquirer.GetSession(ctx, creds, persist)
}

// Login resolves a session and performs the login exchange.
//
// A session cached locally takes precedence over creds and is used without
// acquiring a new one; keepSession only applies to acquired sessions. The
// returned error is nil iff the status is LoginSuccess.
func (s *Service) Login(ctx context.Context, creds Credentials, keepSession bool) (LoginStatus, error) {
	sess, email, source := s.localSession(ctx)

	if !sess.Valid() {
		acquired, err := s.acquirer.GetSession(ctx, creds, keepSession)
		if err != nil {
			errutil.LogError(s.logger, "session acquisition failed", err)
			return LoginFailed, err
		}
		sess, email, source = acquired, creds.Email, sourceAcquired
	}

	return s.exchange(ctx, sess, email, source)
}

// Restore logs in with a locally cached session, if there is one.
// Returns false with a nil error when nothing is cached.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	sess, email, source := s.localSession(ctx)
	if !sess.Valid() {
		return false, nil
	}
	if _, err := s.exchange(ctx, sess, email, source); err != nil {
		return false, err
	}
	return true, nil
}

// exchange submits sess to the hub. Only a successful exchange touches the
// user state.
func (s *Service) exchange(ctx context.Context, sess Session, email, source string) (LoginStatus, error) {
	status := s.backend.Login(ctx, sess).normalize()
	recordLogin(status, source)

	switch status {
	case LoginSuccess:
		s.state.load(sess, email)
		s.logger.InfoContext(ctx, "login succeeded", "uuid", sess.UUID, "source", source)
		return status, nil
	case LoginFailed, LoginNoResponse:
		err := statusError(status, sess, source)
		errutil.LogError(s.logger, "login exchange failed", err)
		return status, err
	default:
		return LoginNoResponse, statusError(LoginNoResponse, sess, source)
	}
}

// Logout ends the hub session and resets the user state to guest.
// Remote failures are logged; the local reset always happens.
func (s *Service) Logout(ctx context.Context) {
	id := s.state.Snapshot()

	err := s.backend.Logout(ctx, id.Session.AuthHeader(), id.Session.AccessToken, id.Guest)
	recordLogout(err)
	if err != nil {
		errutil.LogError(s.logger, "remote logout failed", err)
	}

	s.state.clear()
	s.logger.InfoContext(ctx, "logged out", "was_guest", id.Guest)
}

// localSession loads the cached session. Load errors are logged and treated
// as "no cached session".
func (s *Service) localSession(ctx context.Context) (Session, string, string) {
	sess, email, err := s.local.LoadSession(ctx)
	if err != nil {
		errutil.LogError(s.logger, "could not read local session", err)
		return Session{}, "", ""
	}
	if !sess.Valid() {
		return Session{}, "", ""
	}
	return sess, email, sourceLocal
}
