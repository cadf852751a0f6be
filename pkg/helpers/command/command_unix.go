//go:build !windows

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

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Start launches a command as a detachable background child on Unix.
func (*RealStarter) Start(
	ctx context.Context,
	opts StartOptions,
	name string,
	args ...string,
) (int, error) {
	//nolint:gosec // Intentional: starts the user's own resolved bundles
	cmd := exec.CommandContext(ctx, name, args...)

	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	// Child output must go straight to the log file descriptor, not
	// through a pipe held by this process: a detached child keeps
	// writing long after the parent has moved on or exited. Stdin and,
	// without a log file, both output streams stay on the null device.
	if opts.LogPath != "" {
		//nolint:gosec // log path is built from the configured log dir
		logFile, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return 0, fmt.Errorf("failed to open launch log: %w", err)
		}
		defer func() {
			// The child holds its own descriptor after Start.
			_ = logFile.Close()
		}()
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	}

	if opts.Detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", name, err)
	}

	pid := cmd.Process.Pid

	// Reap in the background so long sessions never accumulate zombies.
	go func() {
		_ = cmd.Wait()
	}()

	return pid, nil
}
