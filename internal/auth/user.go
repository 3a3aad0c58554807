// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import "sync"

// Identity is a point-in-time copy of the user state.
type Identity struct {
	Session Session
	Email   string
	Profile Profile
	Guest   bool
}

// UserState holds the session and identity of the current process user.
//
// Only the Service it is given to transitions it between guest and
// authenticated; everything else gets read access. Concurrent reads are safe.
// Use Snapshot when several fields must be observed together.
type UserState struct {
	mu      sync.RWMutex
	session Session
	email   string
	profile Profile
}

// NewUserState returns a guest user state.
func NewUserState() *UserState {
	return &UserState{}
}

// Session returns the loaded session, or the zero Session for a guest.
func (u *UserState) Session() Session {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.session
}

// Email returns the email of the logged in user, empty for a guest.
func (u *UserState) Email() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.email
}

// Profile returns the display fields derived from the access token.
func (u *UserState) Profile() Profile {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.profile
}

// IsGuest reports whether no valid session is loaded.
func (u *UserState) IsGuest() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return !u.session.Valid()
}

// AuthHeader returns the Authorization header for the loaded session.
func (u *UserState) AuthHeader() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.session.AuthHeader()
}

// Token returns the raw access token.
func (u *UserState) Token() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.session.AccessToken
}

// UUID returns the hub user identifier.
func (u *UserState) UUID() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.session.UUID
}

// Snapshot returns all fields under a single lock.
func (u *UserState) Snapshot() Identity {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return Identity{
		Session: u.session,
		Email:   u.email,
		Profile: u.profile,
		Guest:   !u.session.Valid(),
	}
}

func (u *UserState) load(session Session, email string) {
	profile := ProfileFromToken(session.AccessToken)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.session = session
	u.email = email
	u.profile = profile
}

func (u *UserState) clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.session = Session{}
	u.email = ""
	u.profile = Profile{}
}
