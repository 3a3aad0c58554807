// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

// LoadUserInfo lets external tests seed a logged in user state.
func LoadUserInfo(state *UserState, session Session, email string) {
	state.load(session, email)
}
