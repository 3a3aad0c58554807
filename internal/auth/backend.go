// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import "context"

// Backend is the remote side of authentication.
//
// The create methods return the zero Session (and a nil error) when the hub
// refuses the input; an error means the request itself failed. Both outcomes
// count as "no usable session" to the Acquirer.
type Backend interface {
	// CreateSession requests a session for an email/password pair.
	// When persist is true the implementation caches the session locally.
	CreateSession(ctx context.Context, email, password string, persist bool) (Session, error)

	// CreateSessionFromToken requests a session for a personal access token.
	CreateSessionFromToken(ctx context.Context, token string, persist bool) (Session, error)

	// Login performs the login exchange for a session.
	Login(ctx context.Context, session Session) LoginStatus

	// Logout ends the remote session and drops any locally cached one.
	Logout(ctx context.Context, authHeader, token string, guest bool) error
}

// LocalSessionSource reads a session cached by an earlier login.
type LocalSessionSource interface {
	// LoadSession returns the cached session and the email stored with it.
	// A missing cache is the zero Session with a nil error.
	LoadSession(ctx context.Context) (Session, string, error)
}
