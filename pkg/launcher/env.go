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

// The two environment variables the launcher manages in a child's
// environment: Mesa's render-offload selector and the Vulkan loader's
// ICD override. Nothing else in the parent environment is touched.
const (
	renderOffloadVar = "DRI_PRIME"
	vulkanICDVar     = "VK_ICD_FILENAMES"
)

const (
	intelICD  = "/usr/share/vulkan/icd.d/intel_icd.x86_64.json"
	radeonICD = "/usr/share/vulkan/icd.d/radeon_icd.x86_64.json"
)

// gpuEnv returns the overlay for mode. Exactly one mode's variable set
// is ever active. Dedicated mode deliberately omits the render-offload
// variable: it must end up absent from the child so a value exported in
// the parent shell can't drag the launch back onto the integrated card.
func gpuEnv(mode GPUMode) []string {
	if mode == GPUIntegrated {
		return []string{
			renderOffloadVar + "=0",
			vulkanICDVar + "=" + intelICD,
		}
	}
	return []string{
		vulkanICDVar + "=" + radeonICD,
	}
}

// mergeEnv lays the overlay over a copy of the parent environment.
// Parent values for managed keys are dropped first, so the overlay is
// the only voice on those variables. The parent slice itself is never
// modified.
func mergeEnv(parent, overlay []string) []string {
	merged := make([]string, 0, len(parent)+len(overlay))
	for _, kv := range parent {
		if isManagedVar(kv) {
			continue
		}
		merged = append(merged, kv)
	}
	return append(merged, overlay...)
}

func isManagedVar(kv string) bool {
	key, _, ok := strings.Cut(kv, "=")
	if !ok {
		return false
	}
	return key == renderOffloadVar || key == vulkanICDVar
}
