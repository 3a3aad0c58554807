// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Session is the token bundle identifying an authenticated user to the hub.
// The zero value means "no session".
type Session struct {
	AccessToken string `yaml:"access_token" json:"access_token"`
	TokenType   string `yaml:"token_type" json:"token_type"`
	UUID        string `yaml:"uuid" json:"uuid"`
}

// NewSession creates a validated Session.
// All three fields are required.
func NewSession(accessToken, tokenType, uuid string) (Session, error) {
	if accessToken == "" {
		return Session{}, oops.Code("SESSION_INVALID_TOKEN").Errorf("access token cannot be empty")
	}
	if tokenType == "" {
		return Session{}, oops.Code("SESSION_INVALID_TOKEN_TYPE").Errorf("token type cannot be empty")
	}
	if uuid == "" {
		return Session{}, oops.Code("SESSION_INVALID_UUID").Errorf("user identifier cannot be empty")
	}
	return Session{AccessToken: accessToken, TokenType: tokenType, UUID: uuid}, nil
}

// IsZero reports whether s is the empty "no session" value.
func (s Session) IsZero() bool {
	return s == Session{}
}

// Valid reports whether every field of s is populated.
// A partially filled session is neither zero nor valid.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.TokenType != "" && s.UUID != ""
}

// AuthHeader renders the Authorization header value, e.g. "Bearer abc".
// Returns an empty string for an invalid session.
func (s Session) AuthHeader() string {
	if !s.Valid() {
		return ""
	}
	return titleCase(s.TokenType) + " " + s.AccessToken
}

// titleCase upper-cases the first rune and lower-cases the rest.
func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Credentials carries the inputs a login may use to acquire a session.
type Credentials struct {
	Email    string
	Password string
	Token    string
}

// HasPassword reports whether the email/password pair is usable.
func (c Credentials) HasPassword() bool {
	return c.Email != "" && c.Password != ""
}

// HasToken reports whether a bearer token was supplied.
func (c Credentials) HasToken() bool {
	return c.Token != ""
}
