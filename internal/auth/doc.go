// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package auth reconciles locally cached hub sessions with the hub login flow.
//
// # Domain Types
//
//   - Session - the token bundle identifying a user to the hub; the zero
//     value means "no session"
//   - LoginStatus - tri-state outcome of a login exchange
//   - UserState - the current user of the process, guest until a login
//     succeeds
//
// # Services
//
//   - Acquirer - requests a new session with credentials, falling back to a
//     token
//   - Service - login, logout and restore; the only writer of its UserState
//
// The hub and the local session cache are reached through the Backend and
// LocalSessionSource interfaces. Failures are oops errors carrying one of the
// Code* constants and wrapping one of the Err* sentinels.
package auth
