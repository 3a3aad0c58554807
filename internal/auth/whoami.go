// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"strings"
	"time"
)

// GuestBanner is shown by Whoami when no user is logged in.
const GuestBanner = "You are currently logged in as a guest.\nLog in to access your hub account."

// Whoami describes the current user for display.
func Whoami(state *UserState) string {
	id := state.Snapshot()
	if id.Guest {
		return GuestBanner
	}

	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("email", id.Email)
	line("uuid", id.Session.UUID)
	line("name", id.Profile.DisplayName)
	line("plan", id.Profile.Plan)
	if !id.Profile.ExpiresAt.IsZero() {
		line("expires", id.Profile.ExpiresAt.UTC().Format(time.RFC3339))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
