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

// Package launcher turns a typed command line into a running AppImage:
// parsing the line, resolving the launch policy, overlaying the GPU
// environment and starting the bundle as a detached child.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LunaroProject/lunaro/pkg/appimage"
	"github.com/LunaroProject/lunaro/pkg/helpers/command"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrPermissionDenied is returned when an artifact cannot be marked
// executable. It fails the attempt, never the session.
var ErrPermissionDenied = errors.New("permission denied")

// Elevation rewrites a launch into a privileged invocation. It exists
// as an interface because no single elevation wrapper is guaranteed to
// exist on every system.
type Elevation interface {
	// Wrap returns the command name and argument list to execute in
	// place of invoking path directly.
	Wrap(path string) (name string, args []string)
}

// SudoElevation launches through sudo. The bundle's internal sandbox
// cannot start under root, so its sandbox-disabling argument is always
// appended alongside.
type SudoElevation struct{}

// Wrap implements Elevation.
func (SudoElevation) Wrap(path string) (string, []string) {
	return "sudo", []string{path, "--no-sandbox"}
}

// Launcher starts AppImage bundles according to a resolved policy.
type Launcher struct {
	fs      afero.Fs
	clock   clockwork.Clock
	starter command.Starter
	elevate Elevation
}

// New returns a Launcher backed by the given filesystem, clock and
// process starter, elevating through sudo when a policy asks for it.
// Nil arguments fall back to the real implementations; tests inject
// fakes.
func New(fsys afero.Fs, clock clockwork.Clock, starter command.Starter) *Launcher {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if starter == nil {
		starter = &command.RealStarter{}
	}
	return &Launcher{
		fs:      fsys,
		clock:   clock,
		starter: starter,
		elevate: SudoElevation{},
	}
}

// Result describes a successfully issued launch. Success means the
// start request went through; whether the bundle then ran correctly is
// not this system's concern.
type Result struct {
	Name    string
	LogPath string
	GPU     GPUMode
	PID     int
}

const logStampFormat = "20060102-150405"

// Launch starts the artifact as a detached, non-blocking child under
// the given policy. Launch logs, when enabled, are written beneath
// logDir under the artifact's stored-case name; a relaunch within the
// same clock second reuses the same file, which is accepted.
func (l *Launcher) Launch(artifact appimage.Artifact, policy Policy, logDir string) (*Result, error) {
	if err := l.ensureExecutable(artifact.Path); err != nil {
		return nil, err
	}

	logPath := ""
	if policy.Logging {
		if err := l.fs.MkdirAll(logDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		stamp := l.clock.Now().Format(logStampFormat)
		logPath = filepath.Join(logDir, fmt.Sprintf("%s_%s.log", artifact.Name, stamp))
	}

	opts := command.StartOptions{
		Env:     mergeEnv(os.Environ(), gpuEnv(policy.GPU)),
		LogPath: logPath,
		Detach:  true,
	}

	name := artifact.Path
	var args []string
	if policy.Elevated {
		name, args = l.elevate.Wrap(artifact.Path)
	}

	// Launched bundles run indefinitely until the user closes them, so
	// the spawn context is never tied to the session's lifetime.
	pid, err := l.starter.Start(context.Background(), opts, name, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", artifact.Filename, err)
	}

	log.Info().
		Str("name", artifact.Name).
		Str("gpu", policy.GPU.String()).
		Bool("elevated", policy.Elevated).
		Int("pid", pid).
		Str("log", logPath).
		Msg("launched appimage")

	return &Result{
		Name:    artifact.Name,
		GPU:     policy.GPU,
		PID:     pid,
		LogPath: logPath,
	}, nil
}

// ensureExecutable adds the execute bits an AppImage needs before the
// kernel will run it; fresh downloads usually arrive as plain 0644
// files. Bits already present are left alone.
func (l *Launcher) ensureExecutable(path string) error {
	info, err := l.fs.Stat(path)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	mode := info.Mode()
	if mode&0o111 == 0o111 {
		return nil
	}

	if err := l.fs.Chmod(path, mode|0o111); err != nil {
		// Whatever the filesystem's reason, the artifact cannot be
		// made runnable.
		return fmt.Errorf("%w: chmod %s: %v", ErrPermissionDenied, path, err)
	}

	return nil
}
