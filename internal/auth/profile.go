// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Profile holds display fields carried by a JWT access token.
type Profile struct {
	DisplayName string
	Plan        string
	ExpiresAt   time.Time
}

// IsZero reports whether the token carried no profile fields.
func (p Profile) IsZero() bool {
	return p.DisplayName == "" && p.Plan == "" && p.ExpiresAt.IsZero()
}

// displayNameClaims are checked in order.
var displayNameClaims = []string{"name", "username", "preferred_username"}

// ProfileFromToken reads profile claims from an access token without
// verifying its signature. The hub verifies tokens; these fields are for
// display only. Tokens that are not JWTs yield an empty Profile.
func ProfileFromToken(token string) Profile {
	if token == "" {
		return Profile{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Profile{}
	}

	var p Profile
	for _, key := range displayNameClaims {
		if name, ok := claims[key].(string); ok && name != "" {
			p.DisplayName = name
			break
		}
	}
	if plan, ok := claims["plan"].(string); ok {
		p.Plan = plan
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.ExpiresAt = exp.Time
	}
	return p
}
