// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/samber/oops"

	"github.com/holomush/hubauth/internal/auth"
	"github.com/holomush/hubauth/pkg/errutil"
)

// Messages shown for login failures.
const (
	msgRejected       = "Invalid email, password or token."
	msgUnreachable    = "The hub could not be reached. Please try again later."
	msgNoCredentials  = "Provide --email and --password, or --token."
	msgCachedRejected = "The cached session was rejected; run `hubauth logout` and log in again."
)

// userMessage maps an error to the text printed for the user.
func userMessage(err error) string {
	switch {
	case auth.IsTransient(err):
		return msgUnreachable
	case auth.IsCachedSessionRejected(err):
		return msgCachedRejected
	}

	switch errutil.Code(err) {
	case auth.CodeLoginRejected, auth.CodeAcquisitionFailed:
		return msgRejected
	case auth.CodeNoCredentials:
		return msgNoCredentials
	}

	if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Hint() != "" {
		return "Error: " + err.Error() + "\nHint: " + oopsErr.Hint()
	}
	return "Error: " + err.Error()
}
