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

// Package helpers provides filesystem fixtures shared across tests.
package helpers

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// NewMemoryFS creates a new in-memory filesystem for testing.
func NewMemoryFS() afero.Fs {
	return afero.NewMemMapFs()
}

// CreateAppImageDir creates dir and fills it with the given filenames.
// AppImage entries get a token ELF-style header so they read as real
// binaries rather than empty placeholders.
func CreateAppImageDir(t *testing.T, fsys afero.Fs, dir string, filenames ...string) {
	t.Helper()

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create appimage dir %s: %v", dir, err)
	}

	for _, filename := range filenames {
		path := filepath.Join(dir, filename)
		if err := afero.WriteFile(fsys, path, []byte{0x7f, 'E', 'L', 'F'}, 0o644); err != nil {
			t.Fatalf("failed to create file %s: %v", path, err)
		}
	}
}

// WriteFavorites writes a favorites file with the given names, one per
// line, creating parent directories as needed.
func WriteFavorites(t *testing.T, fsys afero.Fs, path string, names ...string) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create favorites dir: %v", err)
	}

	content := ""
	for _, name := range names {
		content += name + "\n"
	}

	if err := afero.WriteFile(fsys, path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write favorites file %s: %v", path, err)
	}
}
