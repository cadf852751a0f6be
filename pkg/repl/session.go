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

// Package repl implements the interactive session: a single-threaded
// read-dispatch loop over the launch pipeline, the favorites store and
// the catalogue listing. One command runs to completion before the next
// line is read; the only concurrency anywhere is the launched bundle
// itself.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LunaroProject/lunaro/pkg/appimage"
	"github.com/LunaroProject/lunaro/pkg/config"
	"github.com/LunaroProject/lunaro/pkg/favorites"
	"github.com/LunaroProject/lunaro/pkg/launcher"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Session keywords. Matching is case-sensitive and whole-line for the
// zero-argument commands; any line that is not a keyword is a launch
// request.
const (
	cmdHelp  = "help"
	cmdList  = "list"
	cmdFav   = "fav"
	cmdUnfav = "unfav"
	cmdExit  = "exit"
	cmdQuit  = "quit"
)

const prompt = "> "

// Session is one interactive launcher conversation. Everything a
// command handler touches hangs off it, so the package holds no hidden
// globals.
type Session struct {
	cfg      *config.Instance
	favs     *favorites.Store
	fs       afero.Fs
	launcher *launcher.Launcher
	in       io.Reader
	out      io.Writer
}

// Options carries the swappable parts of a Session. Zero fields fall
// back to the real filesystem, launcher and standard streams; tests
// inject memory-backed ones.
type Options struct {
	FS       afero.Fs
	Launcher *launcher.Launcher
	In       io.Reader
	Out      io.Writer
}

// NewSession builds a session over the loaded config and favorites.
func NewSession(cfg *config.Instance, favs *favorites.Store, opts Options) *Session {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Launcher == nil {
		opts.Launcher = launcher.New(opts.FS, nil, nil)
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &Session{
		cfg:      cfg,
		favs:     favs,
		fs:       opts.FS,
		launcher: opts.Launcher,
		in:       opts.In,
		out:      opts.Out,
	}
}

// Run drives the session until exit, quit or end of input. Command
// failures never end the loop: each is reported as one status line and
// the prompt comes back.
func (s *Session) Run() error {
	s.printBanner()

	reader := bufio.NewReader(s.in)
	for {
		_, _ = fmt.Fprint(s.out, prompt)

		line, readErr := reader.ReadString('\n')
		if input := strings.TrimSpace(line); input != "" {
			if quit := s.dispatch(input); quit {
				return nil
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				// ^D: leave the terminal on a fresh line.
				_, _ = fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read command: %w", readErr)
		}
	}
}

// dispatch routes one trimmed input line and reports whether the
// session should end. A keyword followed by anything it does not take
// is no keyword at all, so `list foo` is a launch attempt of `list`.
func (s *Session) dispatch(input string) bool {
	switch input {
	case cmdExit, cmdQuit:
		_, _ = fmt.Fprintln(s.out, "Bye.")
		return true
	case cmdHelp:
		s.printHelp()
		return false
	case cmdList:
		s.printList()
		return false
	case cmdFav, cmdUnfav:
		_, _ = fmt.Fprintf(s.out, "Usage: %s <name>\n", input)
		return false
	}

	fields := strings.Fields(input)
	switch fields[0] {
	case cmdFav:
		s.addFavorite(fields[1])
	case cmdUnfav:
		s.removeFavorite(fields[1])
	default:
		s.launchLine(input)
	}
	return false
}

// launchLine runs the resolve-policy-launch pipeline for one typed
// request. Every failure surfaces as a single status line.
func (s *Session) launchLine(input string) {
	cmd := launcher.ParseCommand(input)

	artifact, err := appimage.Resolve(s.fs, s.cfg.AppImageDir(), cmd.Name)
	if err != nil {
		if errors.Is(err, appimage.ErrNotFound) {
			s.reportNotFound(cmd.Name)
			return
		}
		_, _ = fmt.Fprintf(s.out, "Could not look up %s: %s\n", cmd.Name, err)
		return
	}

	policy := launcher.ResolvePolicy(cmd, s.cfg.DefaultGPU())

	result, err := s.launcher.Launch(artifact, policy, s.cfg.LogDir())
	if err != nil {
		if errors.Is(err, launcher.ErrPermissionDenied) {
			_, _ = fmt.Fprintf(s.out, "Cannot make %s executable: permission denied.\n",
				artifact.Filename)
			return
		}
		log.Error().Err(err).Msgf("launch failed: %s", cmd.Name)
		_, _ = fmt.Fprintf(s.out, "Launch failed: %s\n", err)
		return
	}

	_, _ = fmt.Fprintf(s.out, "Launched %s (%s, pid %d)\n", result.Name, result.GPU, result.PID)
	if result.LogPath != "" {
		_, _ = fmt.Fprintf(s.out, "Logging to %s\n", result.LogPath)
	}
}

// reportNotFound prints the not-found status line, adding a nearest
// catalogue name when one is close enough to be a likely typo.
func (s *Session) reportNotFound(name string) {
	artifacts := appimage.List(s.fs, s.cfg.AppImageDir())
	if hint, ok := appimage.Suggest(name, artifacts); ok {
		_, _ = fmt.Fprintf(s.out, "No AppImage named %q. Did you mean %s? Try `list`.\n",
			name, hint)
		return
	}
	_, _ = fmt.Fprintf(s.out, "No AppImage named %q. Try `list` to see what's available.\n",
		name)
}

// addFavorite records name as a favorite. A name that resolves is
// stored under the artifact's casing so later listings agree with the
// catalogue; an unresolvable name is stored as typed, since a favorite
// may point at a bundle that is not installed yet.
func (s *Session) addFavorite(name string) {
	stored := name
	if artifact, err := appimage.Resolve(s.fs, s.cfg.AppImageDir(), name); err == nil {
		stored = artifact.Name
	}

	added, err := s.favs.Add(stored)
	if err != nil {
		_, _ = fmt.Fprintf(s.out, "Could not save favorites: %s\n", err)
		return
	}
	if !added {
		_, _ = fmt.Fprintf(s.out, "%s is already a favorite.\n", stored)
		return
	}
	_, _ = fmt.Fprintf(s.out, "Added %s to favorites.\n", stored)
}

func (s *Session) removeFavorite(name string) {
	removed, err := s.favs.Remove(name)
	if err != nil {
		_, _ = fmt.Fprintf(s.out, "Could not save favorites: %s\n", err)
		return
	}
	if !removed {
		_, _ = fmt.Fprintf(s.out, "%s is not a favorite.\n", name)
		return
	}
	_, _ = fmt.Fprintf(s.out, "Removed %s from favorites.\n", name)
}
