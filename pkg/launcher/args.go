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

package launcher

import "strings"

// Launch flags. Anything else after the name is carried along but never
// acted on, so future flags don't break older binaries.
const (
	FlagIGPU    = "-igpu"
	FlagDGPU    = "-dgpu"
	FlagLog     = "-l"
	FlagRoot    = "-r"
	FlagLogRoot = "-lr"
	FlagRootLog = "-rl"
)

// Command is one parsed launch request. It lives for a single dispatch
// and is never stored.
type Command struct {
	Flags map[string]struct{}
	Name  string
}

// ParseCommand splits a trimmed input line into the artifact name and
// its flag set. The first whitespace-delimited token is the name with
// its casing preserved; the rest collapse into a set, so duplicates and
// ordering carry no meaning. There is no quoting: whitespace is the
// sole delimiter. Callers must special-case empty lines before parsing.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}

	flags := make(map[string]struct{}, len(fields)-1)
	for _, field := range fields[1:] {
		flags[field] = struct{}{}
	}

	return Command{Name: fields[0], Flags: flags}
}

func (c Command) has(flag string) bool {
	_, ok := c.Flags[flag]
	return ok
}
