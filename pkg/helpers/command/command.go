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

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"context"
)

// StartOptions configures how a child process is started.
type StartOptions struct {
	// Env is the complete environment for the child. Nil inherits the
	// parent environment unchanged.
	Env []string

	// LogPath appends the child's combined stdout and stderr to the
	// file at this path. Empty discards child output entirely; it is
	// never connected to the parent's own streams.
	LogPath string

	// Detach starts the child in its own session so it keeps running
	// after the parent exits and never competes for the terminal.
	Detach bool
}

// Starter provides an abstraction over exec.Command for testability.
// This allows process startup to be mocked in tests without executing
// real system commands.
type Starter interface {
	// Start launches a command without waiting for it to complete
	// (fire-and-forget). It returns the PID of the started process, or
	// an error if the command could not be started.
	Start(ctx context.Context, opts StartOptions, name string, args ...string) (int, error)
}

// RealStarter uses actual exec.Command to start system commands.
// This is the production implementation used in normal operation.
type RealStarter struct{}
