// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// Acquirer obtains new sessions from the hub.
type Acquirer struct {
	backend Backend
	logger  *slog.Logger
}

// NewAcquirer creates an Acquirer with a no-op logger.
func NewAcquirer(backend Backend) (*Acquirer, error) {
	return NewAcquirerWithLogger(backend, slog.New(slog.DiscardHandler))
}

// NewAcquirerWithLogger creates an Acquirer with the provided logger.
func NewAcquirerWithLogger(backend Backend, logger *slog.Logger) (*Acquirer, error) {
	if backend == nil {
		return nil, oops.Errorf("backend is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Acquirer{backend: backend, logger: logger}, nil
}

// GetSession requests a session using the email/password pair first and the
// token second. The token is only tried when the credential path yields no
// usable session. persist is passed through to the backend.
func (a *Acquirer) GetSession(ctx context.Context, creds Credentials, persist bool) (Session, error) {
	if !creds.HasPassword() && !creds.HasToken() {
		return Session{}, oops.Code(CodeNoCredentials).
			Hint("supply an email and password, or a token").
			Wrap(noCredentialsError{})
	}

	var lastErr error

	if creds.HasPassword() {
		sess, err := a.backend.CreateSession(ctx, creds.Email, creds.Password, persist)
		recordAcquisition(pathCredentials, sess, err)
		if err == nil && sess.Valid() {
			return sess, nil
		}
		if err != nil {
			lastErr = err
			a.logger.WarnContext(ctx, "credential session request failed", "email", creds.Email, "error", err)
		} else {
			a.logger.DebugContext(ctx, "credential session request returned no session", "email", creds.Email)
		}
	}

	if creds.HasToken() {
		sess, err := a.backend.CreateSessionFromToken(ctx, creds.Token, persist)
		recordAcquisition(pathToken, sess, err)
		if err == nil && sess.Valid() {
			return sess, nil
		}
		if err != nil {
			lastErr = err
			a.logger.WarnContext(ctx, "token session request failed", "error", err)
		} else {
			a.logger.DebugContext(ctx, "token session request returned no session")
		}
	}

	builder := oops.Code(CodeAcquisitionFailed).
		With("credentials_tried", creds.HasPassword()).
		With("token_tried", creds.HasToken())
	if lastErr != nil {
		builder = builder.With(ctxLastError, lastErr.Error())
	}
	return Session{}, builder.Wrap(ErrAcquisition)
}
