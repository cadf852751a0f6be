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

package repl

import (
	"fmt"
	"strings"

	"github.com/LunaroProject/lunaro/pkg/appimage"
	"github.com/LunaroProject/lunaro/pkg/config"
)

func (s *Session) printBanner() {
	artifacts := appimage.List(s.fs, s.cfg.AppImageDir())
	_, _ = fmt.Fprintf(s.out, "Lunaro %s\n", config.AppVersion)
	_, _ = fmt.Fprintf(s.out, "%d AppImages in %s. Type `help` for commands.\n",
		len(artifacts), s.cfg.AppImageDir())
}

func (s *Session) printHelp() {
	_, _ = fmt.Fprint(s.out, `Commands:
  <name> [flags]   launch an AppImage by name (case-insensitive)
  list             show favorites and available AppImages
  fav <name>       add a name to the favorites
  unfav <name>     remove a name from the favorites
  help             show this help
  exit, quit       leave

Launch flags:
  -igpu   run on the integrated GPU
  -dgpu   run on the dedicated GPU
  -l      write the bundle's output to a launch log
  -r      launch elevated through sudo
  -lr     shorthand for -l -r (also -rl)
`)
}

// printList shows favorites first, then the rest of the catalogue.
// Favorites pointing at missing bundles stay in the store but are not
// shown; the listing reflects what can launch right now.
func (s *Session) printList() {
	artifacts := appimage.List(s.fs, s.cfg.AppImageDir())

	byName := make(map[string]appimage.Artifact, len(artifacts))
	for _, artifact := range artifacts {
		key := strings.ToLower(artifact.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = artifact
		}
	}

	favShown := make(map[string]struct{})
	favLines := make([]string, 0, len(byName))
	for _, name := range s.favs.Names() {
		artifact, ok := byName[strings.ToLower(name)]
		if !ok {
			continue
		}
		favShown[strings.ToLower(name)] = struct{}{}
		favLines = append(favLines, artifact.Name)
	}

	_, _ = fmt.Fprintln(s.out, "Favorites:")
	if len(favLines) == 0 {
		_, _ = fmt.Fprintln(s.out, "  (none)")
	}
	for _, line := range favLines {
		_, _ = fmt.Fprintf(s.out, "  %s\n", line)
	}

	_, _ = fmt.Fprintln(s.out, "AppImages:")
	listed := false
	for _, artifact := range artifacts {
		if _, ok := favShown[strings.ToLower(artifact.Name)]; ok {
			continue
		}
		listed = true
		_, _ = fmt.Fprintf(s.out, "  %s\n", artifact.Name)
	}
	if !listed {
		_, _ = fmt.Fprintln(s.out, "  (none)")
	}
}
