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

package appimage

import (
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// Suggestion tuning. Jaro-Winkler is used because it heavily weights
// matching prefixes, and users typing an app name usually get the start
// right. The length pre-filter skips candidates that can't plausibly be
// the same word.
const (
	suggestMinSimilarity = 0.8
	suggestMaxLenDiff    = 4
)

// Suggest returns the artifact name closest to the typed name, for the
// "did you mean" hint after a failed lookup. ok is false when nothing
// is close enough to be worth suggesting.
func Suggest(name string, artifacts []Artifact) (string, bool) {
	query := strings.ToLower(name)

	best := ""
	var bestScore float32

	for i := range artifacts {
		candidate := artifacts[i].Name

		lenDiff := len(query) - len(candidate)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > suggestMaxLenDiff {
			continue
		}

		similarity := edlib.JaroWinklerSimilarity(query, strings.ToLower(candidate))
		if similarity > 0.7 {
			log.Debug().
				Str("query", name).
				Str("candidate", candidate).
				Float32("similarity", similarity).
				Msg("suggestion candidate")
		}

		if similarity >= suggestMinSimilarity && similarity > bestScore {
			best = candidate
			bestScore = similarity
		}
	}

	return best, best != ""
}
