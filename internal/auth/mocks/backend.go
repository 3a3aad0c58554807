// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package mocks provides testify mocks for the auth package interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/holomush/hubauth/internal/auth"
)

// MockBackend is a mock implementation of auth.Backend.
type MockBackend struct {
	mock.Mock
}

// NewMockBackend creates a MockBackend whose expectations are asserted when
// the test ends.
func NewMockBackend(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockBackend {
	m := &MockBackend{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CreateSession implements auth.Backend.
func (m *MockBackend) CreateSession(ctx context.Context, email, password string, persist bool) (auth.Session, error) {
	args := m.Called(ctx, email, password, persist)
	return args.Get(0).(auth.Session), args.Error(1)
}

// CreateSessionFromToken implements auth.Backend.
func (m *MockBackend) CreateSessionFromToken(ctx context.Context, token string, persist bool) (auth.Session, error) {
	args := m.Called(ctx, token, persist)
	return args.Get(0).(auth.Session), args.Error(1)
}

// Login implements auth.Backend.
func (m *MockBackend) Login(ctx context.Context, session auth.Session) auth.LoginStatus {
	args := m.Called(ctx, session)
	return args.Get(0).(auth.LoginStatus)
}

// Logout implements auth.Backend.
func (m *MockBackend) Logout(ctx context.Context, authHeader, token string, guest bool) error {
	args := m.Called(ctx, authHeader, token, guest)
	return args.Error(0)
}

// MockLocalSessionSource is a mock implementation of auth.LocalSessionSource.
type MockLocalSessionSource struct {
	mock.Mock
}

// NewMockLocalSessionSource creates a MockLocalSessionSource whose
// expectations are asserted when the test ends.
func NewMockLocalSessionSource(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockLocalSessionSource {
	m := &MockLocalSessionSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// LoadSession implements auth.LocalSessionSource.
func (m *MockLocalSessionSource) LoadSession(ctx context.Context) (auth.Session, string, error) {
	args := m.Called(ctx)
	return args.Get(0).(auth.Session), args.String(1), args.Error(2)
}
