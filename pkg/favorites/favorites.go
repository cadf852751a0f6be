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

// Package favorites persists the user's favorite application names as a
// flat file, one name per line, oldest first.
package favorites

import (
	"fmt"
	"strings"

	"github.com/LunaroProject/lunaro/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Store holds the favorites in insertion order and mirrors every change
// back to disk with a full rewrite. Names are compared case-insensitively
// everywhere but stored with the casing they were added under.
type Store struct {
	fs    afero.Fs
	path  string
	names []string
	mu    syncutil.RWMutex
}

// NewStore loads the favorites file at path, creating an empty store
// when the file does not exist yet.
func NewStore(fsys afero.Fs, path string) (*Store, error) {
	store := &Store{fs: fsys, path: path}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

// load reads the favorites file, tolerating the damage hand editing
// leaves behind: blank lines are skipped and duplicate names keep only
// their first occurrence.
func (s *Store) load() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to check favorites file: %w", err)
	}
	if !exists {
		return nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to read favorites file: %w", err)
	}

	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			log.Warn().Msgf("dropping duplicate favorite: %s", name)
			continue
		}
		seen[key] = struct{}{}
		s.names = append(s.names, name)
	}

	return nil
}

// save rewrites the whole file. Caller must hold mu.
func (s *Store) save() error {
	var sb strings.Builder
	for _, name := range s.names {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}

	if err := afero.WriteFile(s.fs, s.path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}
	return nil
}

// Add appends name to the favorites and reports whether it was added.
// A name already present under any casing is left alone.
func (s *Store) Add(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(name) >= 0 {
		return false, nil
	}

	s.names = append(s.names, name)
	if err := s.save(); err != nil {
		s.names = s.names[:len(s.names)-1]
		return false, err
	}

	log.Info().Msgf("added favorite: %s", name)
	return true, nil
}

// Remove deletes name from the favorites and reports whether it was
// present.
func (s *Store) Remove(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return false, nil
	}

	updated := make([]string, 0, len(s.names)-1)
	updated = append(updated, s.names[:i]...)
	updated = append(updated, s.names[i+1:]...)

	prev := s.names
	s.names = updated
	if err := s.save(); err != nil {
		s.names = prev
		return false, err
	}

	log.Info().Msgf("removed favorite: %s", name)
	return true, nil
}

// Contains reports whether name is a favorite under any casing.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(name) >= 0
}

// Names returns a copy of the favorites in insertion order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// indexOf is the case-insensitive lookup behind Add, Remove and
// Contains. Caller must hold mu.
func (s *Store) indexOf(name string) int {
	for i, existing := range s.names {
		if strings.EqualFold(existing, name) {
			return i
		}
	}
	return -1
}
