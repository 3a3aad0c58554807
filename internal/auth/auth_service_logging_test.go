// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/hubauth/internal/auth"
)

// fakeBackend answers every request with fixed results.
type fakeBackend struct {
	session   auth.Session
	status    auth.LoginStatus
	logoutErr error
}

func (f *fakeBackend) CreateSession(_ context.Context, _, _ string, _ bool) (auth.Session, error) {
	return f.session, nil
}

func (f *fakeBackend) CreateSessionFromToken(_ context.Context, _ string, _ bool) (auth.Session, error) {
	return f.session, nil
}

func (f *fakeBackend) Login(_ context.Context, _ auth.Session) auth.LoginStatus {
	return f.status
}

func (f *fakeBackend) Logout(_ context.Context, _, _ string, _ bool) error {
	return f.logoutErr
}

// noLocalSession never has a cached session.
type noLocalSession struct{}

func (noLocalSession) LoadSession(_ context.Context) (auth.Session, string, error) {
	return auth.Session{}, "", nil
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func findLog(entries []map[string]any, msg string) map[string]any {
	for _, e := range entries {
		if e["msg"] == msg {
			return e
		}
	}
	return nil
}

func TestAuthService_LogsRejectedLogin(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	backend := &fakeBackend{session: testSession, status: auth.LoginFailed}
	svc, err := auth.NewAuthServiceWithLogger(backend, noLocalSession{}, auth.NewUserState(), logger)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), testCreds, false)
	require.Error(t, err)

	entry := findLog(decodeLogLines(t, &buf), "login exchange failed")
	require.NotNil(t, entry, "expected a log entry for the rejected exchange")
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, auth.CodeLoginRejected, entry["code"])
}

func TestAuthService_LogsSuccessfulLogin(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	backend := &fakeBackend{session: testSession, status: auth.LoginSuccess}
	svc, err := auth.NewAuthServiceWithLogger(backend, noLocalSession{}, auth.NewUserState(), logger)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), testCreds, false)
	require.NoError(t, err)

	entry := findLog(decodeLogLines(t, &buf), "login succeeded")
	require.NotNil(t, entry)
	assert.Equal(t, "test_uuid", entry["uuid"])
	assert.Equal(t, "acquired", entry["source"])
	assert.NotContains(t, buf.String(), "test_pass")
}

func TestAuthService_LogsRemoteLogoutFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	backend := &fakeBackend{logoutErr: errors.New("connection reset")}
	state := auth.NewUserState()
	auth.LoadUserInfo(state, testSession, "test@email.com")
	svc, err := auth.NewAuthServiceWithLogger(backend, noLocalSession{}, state, logger)
	require.NoError(t, err)

	svc.Logout(context.Background())

	entries := decodeLogLines(t, &buf)
	failure := findLog(entries, "remote logout failed")
	require.NotNil(t, failure)
	assert.Contains(t, failure["error"], "connection reset")

	done := findLog(entries, "logged out")
	require.NotNil(t, done)
	assert.Equal(t, false, done["was_guest"])
	assert.True(t, state.IsGuest())
}
