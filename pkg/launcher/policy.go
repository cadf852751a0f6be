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

import "github.com/LunaroProject/lunaro/pkg/config"

// GPUMode selects which GPU a launch is steered to.
type GPUMode int

const (
	// GPUDedicated renders on the discrete card.
	GPUDedicated GPUMode = iota
	// GPUIntegrated renders on the CPU's integrated card.
	GPUIntegrated
)

// String returns the label shown to the user after a launch.
func (m GPUMode) String() string {
	if m == GPUIntegrated {
		return "iGPU"
	}
	return "dGPU"
}

// Policy is everything a launch depends on beyond the artifact itself,
// resolved once per attempt. It is derived, used and discarded; nothing
// persists it.
type Policy struct {
	GPU      GPUMode
	Logging  bool
	Elevated bool
}

// ResolvePolicy derives the launch policy from a command's flags and
// the configured default GPU. The three fields derive independently: no
// flag feeds more than one of them.
func ResolvePolicy(cmd Command, defaultGPU string) Policy {
	var policy Policy

	// -igpu is checked first, so it wins when both GPU flags appear on
	// one line. Documented precedence, not an accident to fix.
	switch {
	case cmd.has(FlagIGPU):
		policy.GPU = GPUIntegrated
	case cmd.has(FlagDGPU):
		policy.GPU = GPUDedicated
	case defaultGPU == config.GPUIntegrated:
		policy.GPU = GPUIntegrated
	default:
		policy.GPU = GPUDedicated
	}

	policy.Logging = cmd.has(FlagLog) || cmd.has(FlagLogRoot) || cmd.has(FlagRootLog)
	policy.Elevated = cmd.has(FlagRoot) || cmd.has(FlagLogRoot) || cmd.has(FlagRootLog)

	return policy
}
