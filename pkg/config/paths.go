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

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ConfigDir returns the directory holding the config file.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir returns the directory holding user data such as favorites.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// StateDir returns the directory holding the launcher's own rotating
// debug log. Launch logs go to the configured LOG_DIR instead.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// FavoritesPath returns the location of the favorites file.
func FavoritesPath() string {
	return filepath.Join(DataDir(), FavsFile)
}

// ExpandHome replaces a leading ~ in path with the current home
// directory. When no home directory can be determined the path is
// returned unchanged and the caller sees it fail as a missing
// directory, which every consumer already tolerates.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home := os.Getenv("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return path
		}
	}

	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
