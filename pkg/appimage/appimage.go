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

// Package appimage discovers AppImage bundles and resolves user-typed
// names against them.
package appimage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Suffix is the bundle filename suffix, matched case-insensitively.
const Suffix = ".AppImage"

// ErrNotFound is returned when no artifact matches a requested name.
var ErrNotFound = errors.New("no such appimage")

// Artifact is one launchable bundle found in the configured directory.
// Name is the filename with the suffix stripped; its original casing is
// authoritative and appears in every derived path, such as launch log
// names, regardless of how the user typed it.
type Artifact struct {
	Name     string
	Filename string
	Path     string
}

// List returns every AppImage in dir, in directory listing order. A
// missing or unreadable directory lists as empty rather than failing:
// to the prompt, "nothing there yet" and "empty" look the same.
func List(fsys afero.Fs, dir string) []Artifact {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("cannot list appimage directory")
		return nil
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := trimSuffix(entry.Name())
		if !ok {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Name:     name,
			Filename: entry.Name(),
			Path:     filepath.Join(dir, entry.Name()),
		})
	}

	return artifacts
}

// Resolve finds the artifact in dir whose logical name matches the
// typed name, ignoring case. When several filenames differ only by
// case the first in directory listing order wins; that pick is stable
// for an unchanged directory but otherwise arbitrary.
func Resolve(fsys afero.Fs, dir, name string) (Artifact, error) {
	for _, artifact := range List(fsys, dir) {
		if strings.EqualFold(artifact.Name, name) {
			return artifact, nil
		}
	}
	return Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// trimSuffix strips the bundle suffix from a filename, reporting
// whether the filename carried it. Matching ignores case so sloppily
// renamed bundles still count. A bare ".AppImage" with no stem is not
// a usable artifact.
func trimSuffix(filename string) (string, bool) {
	if len(filename) <= len(Suffix) {
		return "", false
	}

	stem := filename[:len(filename)-len(Suffix)]
	ext := filename[len(filename)-len(Suffix):]
	if !strings.EqualFold(ext, Suffix) {
		return "", false
	}

	return stem, true
}
