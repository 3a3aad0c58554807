// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
)

// Error codes attached to failures returned by this package.
const (
	CodeAcquisitionFailed = "AUTH_ACQUISITION_FAILED"
	CodeNoCredentials     = "AUTH_NO_CREDENTIALS"
	CodeLoginRejected     = "AUTH_LOGIN_REJECTED"
	CodeLoginUnreachable  = "AUTH_LOGIN_UNREACHABLE"
)

var (
	// ErrAcquisition is returned when no acquisition path produced a session.
	ErrAcquisition = errors.New("could not acquire a session")

	// ErrNoCredentials is returned when login has neither a cached session
	// nor any credentials to acquire one with.
	ErrNoCredentials = errors.New("no credentials supplied")

	// ErrLoginRejected is returned when the hub rejects the session.
	ErrLoginRejected = errors.New("login rejected")

	// ErrLoginUnreachable is returned when the hub gave no usable answer.
	ErrLoginUnreachable = errors.New("hub unreachable")
)

// noCredentialsError satisfies errors.Is for both ErrNoCredentials and
// ErrAcquisition: a login with nothing to acquire from is an acquisition
// failure as well as a configuration fault.
type noCredentialsError struct{}

func (noCredentialsError) Error() string { return ErrNoCredentials.Error() }

func (noCredentialsError) Is(target error) bool {
	return target == ErrNoCredentials || target == ErrAcquisition
}

// IsRejected reports whether err is an explicit login rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrLoginRejected)
}

// IsUnreachable reports whether err is a hub reachability failure.
// Callers may retry these; rejections should not be retried.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrLoginUnreachable)
}

// Context keys read back by the Is* helpers.
const (
	ctxLastError = "last_error"
	ctxSource    = "source"
)

// IsTransient reports whether retrying err may succeed: the hub gave no
// usable answer to the login exchange, or a session request failed outright
// rather than being refused.
func IsTransient(err error) bool {
	if IsUnreachable(err) {
		return true
	}
	if !errors.Is(err, ErrAcquisition) || errors.Is(err, ErrNoCredentials) {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	_, failed := oopsErr.Context()[ctxLastError]
	return failed
}

// IsCachedSessionRejected reports whether err is a rejection of a session
// loaded from the local cache rather than one acquired with credentials.
func IsCachedSessionRejected(err error) bool {
	if !IsRejected(err) {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	return oopsErr.Context()[ctxSource] == sourceLocal
}

// statusError converts a failed exchange status into a coded error.
func statusError(status LoginStatus, sess Session, source string) error {
	builder := oops.With("status", status.String()).
		With("uuid", sess.UUID).
		With(ctxSource, source)
	switch status {
	case LoginFailed:
		return builder.Code(CodeLoginRejected).Wrap(ErrLoginRejected)
	case LoginNoResponse:
		return builder.Code(CodeLoginUnreachable).Wrap(ErrLoginUnreachable)
	case LoginSuccess:
		return nil
	default:
		return builder.Code(CodeLoginUnreachable).Wrap(ErrLoginUnreachable)
	}
}
