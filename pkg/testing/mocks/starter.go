// Lunaro
// Copyright (c) 2025 The Lunaro Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Lunaro.
//
// Lunaro is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lunaro is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lunaro.  If not, see <http://www.gnu.org/licenses/>.

// Package mocks holds testify mocks shared across package tests.
package mocks

import (
	"context"

	"github.com/LunaroProject/lunaro/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockStarter is a testify mock for command.Starter. It allows testing
// launch behavior without spawning real processes.
type MockStarter struct {
	mock.Mock
}

// Start mocks starting a detached child process.
// Use On() to set expectations and Return() to control the mock behavior.
//
// Example:
//
//	starter := &MockStarter{}
//	starter.On("Start", mock.Anything, mock.Anything, "/apps/D.AppImage", mock.Anything).
//		Return(1234, nil)
func (m *MockStarter) Start(
	ctx context.Context,
	opts command.StartOptions,
	name string,
	args ...string,
) (int, error) {
	called := m.Called(ctx, opts, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Int(0), called.Error(1)
}
