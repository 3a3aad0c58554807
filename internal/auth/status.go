// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

// LoginStatus is the outcome of a login exchange with the hub.
type LoginStatus int

// Login exchange outcomes.
const (
	// LoginSuccess means the hub accepted the session.
	LoginSuccess LoginStatus = iota + 1
	// LoginFailed means the hub explicitly rejected the session.
	LoginFailed
	// LoginNoResponse means the hub could not be reached or answered with
	// something that is neither an acceptance nor a rejection.
	LoginNoResponse
)

// String returns the upper-case status name.
func (s LoginStatus) String() string {
	switch s {
	case LoginSuccess:
		return "SUCCESS"
	case LoginFailed:
		return "FAILED"
	case LoginNoResponse:
		return "NO_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// normalize maps out-of-range values to LoginNoResponse.
// An unknown outcome cannot be trusted as either acceptance or rejection.
func (s LoginStatus) normalize() LoginStatus {
	switch s {
	case LoginSuccess, LoginFailed, LoginNoResponse:
		return s
	default:
		return LoginNoResponse
	}
}
