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

package repl_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LunaroProject/lunaro/pkg/config"
	"github.com/LunaroProject/lunaro/pkg/favorites"
	"github.com/LunaroProject/lunaro/pkg/helpers/command"
	"github.com/LunaroProject/lunaro/pkg/launcher"
	"github.com/LunaroProject/lunaro/pkg/repl"
	testhelpers "github.com/LunaroProject/lunaro/pkg/testing/helpers"
	"github.com/LunaroProject/lunaro/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	testAppDir   = "/apps"
	testLogDir   = "/logs"
	testFavsPath = "/data/favorites.txt"
)

var testClockTime = time.Date(2025, 8, 24, 13, 45, 9, 0, time.UTC)

type sessionFixture struct {
	fs      afero.Fs
	cfg     *config.Instance
	favs    *favorites.Store
	starter *mocks.MockStarter
}

// newSessionFixture wires a memory-backed session around a mocked
// process starter. filenames seed the AppImage directory, favNames the
// favorites file.
func newSessionFixture(t *testing.T, filenames, favNames []string) *sessionFixture {
	t.Helper()

	fsys := testhelpers.NewMemoryFS()
	testhelpers.CreateAppImageDir(t, fsys, testAppDir, filenames...)
	if len(favNames) > 0 {
		testhelpers.WriteFavorites(t, fsys, testFavsPath, favNames...)
	}

	cfg, err := config.NewConfig(t.TempDir(), config.Values{
		AppImageDir: testAppDir,
		LogDir:      testLogDir,
		DefaultGPU:  config.GPUDedicated,
	})
	require.NoError(t, err)

	favs, err := favorites.NewStore(fsys, testFavsPath)
	require.NoError(t, err)

	return &sessionFixture{
		fs:      fsys,
		cfg:     cfg,
		favs:    favs,
		starter: &mocks.MockStarter{},
	}
}

// run feeds script to a fresh session and returns everything it wrote.
func (f *sessionFixture) run(t *testing.T, script string) string {
	t.Helper()

	var out bytes.Buffer
	session := repl.NewSession(f.cfg, f.favs, repl.Options{
		FS:       f.fs,
		Launcher: launcher.New(f.fs, clockwork.NewFakeClockAt(testClockTime), f.starter),
		In:       strings.NewReader(script),
		Out:      &out,
	})
	require.NoError(t, session.Run())
	return out.String()
}

func startedOpts(t *testing.T, starter *mocks.MockStarter) command.StartOptions {
	t.Helper()
	require.Len(t, starter.Calls, 1)
	opts, ok := starter.Calls[0].Arguments.Get(1).(command.StartOptions)
	require.True(t, ok)
	return opts
}

func TestSession_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("banner_then_exit", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "exit\n")

		assert.Contains(t, out, "Lunaro")
		assert.Contains(t, out, "1 AppImages in /apps")
		assert.Contains(t, out, "Bye.")
	})

	t.Run("quit_also_ends_the_session", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "quit\n")

		assert.Contains(t, out, "Bye.")
	})

	t.Run("end_of_input_ends_the_session", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "")

		assert.Contains(t, out, "Lunaro")
		assert.NotContains(t, out, "Bye.")
	})

	t.Run("blank_lines_are_ignored", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "\n   \n\t\nexit\n")

		assert.NotContains(t, out, "No AppImage")
		assert.Equal(t, 1, strings.Count(out, "Bye."))
	})

	t.Run("help_describes_commands_and_flags", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "help\nexit\n")

		assert.Contains(t, out, "fav <name>")
		assert.Contains(t, out, "unfav <name>")
		assert.Contains(t, out, "-igpu")
		assert.Contains(t, out, "-lr")
	})

	t.Run("keywords_are_case_sensitive", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "LIST\nexit\n")

		assert.Contains(t, out, `No AppImage named "LIST"`)
		assert.NotContains(t, out, "Favorites:")
	})

	t.Run("keyword_with_argument_is_a_launch_attempt", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "list foo\nexit\n")

		assert.Contains(t, out, `No AppImage named "list"`)
		assert.NotContains(t, out, "Favorites:")
	})
}

func TestSession_List(t *testing.T) {
	t.Parallel()

	t.Run("favorites_then_remaining_catalogue", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t,
			[]string{"Discord.AppImage", "LunarMC.AppImage"},
			[]string{"Discord"})

		out := f.run(t, "list\nexit\n")

		assert.Contains(t, out, "Favorites:\n  Discord\nAppImages:\n  LunarMC\n")
	})

	t.Run("favorite_excluded_from_catalogue_case_insensitively", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t,
			[]string{"Discord.AppImage", "LunarMC.AppImage"},
			[]string{"dIsCoRd"})

		out := f.run(t, "list\nexit\n")

		// Shown under the catalogue's casing, not the favorite's.
		assert.Contains(t, out, "Favorites:\n  Discord\n")
		assert.Equal(t, 1, strings.Count(out, "Discord"))
	})

	t.Run("missing_favorites_are_hidden_but_kept", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t,
			[]string{"LunarMC.AppImage"},
			[]string{"Ghost"})

		out := f.run(t, "list\nexit\n")

		assert.NotContains(t, out, "Ghost")
		assert.Contains(t, out, "Favorites:\n  (none)\n")
		assert.True(t, f.favs.Contains("Ghost"))
	})

	t.Run("empty_directory_lists_nothing", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "list\nexit\n")

		assert.Contains(t, out, "AppImages:\n  (none)\n")
	})
}

func TestSession_Launch(t *testing.T) {
	t.Parallel()

	t.Run("typed_name_resolves_case_insensitively", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)
		f.starter.On("Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(4242, nil)

		out := f.run(t, "discord\nexit\n")

		assert.Contains(t, out, "Launched Discord (dGPU, pid 4242)")
		assert.NotContains(t, out, "Logging to")
		f.starter.AssertNumberOfCalls(t, "Start", 1)
	})

	t.Run("flags_steer_gpu_logging_and_elevation", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)
		f.starter.On("Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(7, nil)

		out := f.run(t, "discord -igpu -lr\nexit\n")

		assert.Contains(t, out, "Launched Discord (iGPU, pid 7)")
		assert.Contains(t, out, "Logging to /logs/Discord_20250824-134509.log")

		opts := startedOpts(t, f.starter)
		assert.Contains(t, opts.Env, "DRI_PRIME=0")
		assert.Equal(t, "/logs/Discord_20250824-134509.log", opts.LogPath)
		assert.True(t, opts.Detach)

		name, _ := f.starter.Calls[0].Arguments.Get(2).(string)
		args, _ := f.starter.Calls[0].Arguments.Get(3).([]string)
		assert.Equal(t, "sudo", name)
		assert.Equal(t, []string{"/apps/Discord.AppImage", "--no-sandbox"}, args)
	})

	t.Run("unknown_name_reports_and_keeps_running", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "ghost\nlist\nexit\n")

		assert.Contains(t, out, `No AppImage named "ghost"`)
		assert.Contains(t, out, "`list`")
		assert.Contains(t, out, "AppImages:")
		assert.Contains(t, out, "Bye.")
		f.starter.AssertNotCalled(t, "Start")
	})

	t.Run("near_miss_gets_a_suggestion", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "Discrod\nexit\n")

		assert.Contains(t, out, "Did you mean Discord?")
	})

	t.Run("start_failure_is_one_status_line", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)
		f.starter.On("Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(0, errors.New("exec format error"))

		out := f.run(t, "discord\nhelp\nexit\n")

		assert.Contains(t, out, "Launch failed:")
		assert.Contains(t, out, "Discord.AppImage")
		assert.Contains(t, out, "Commands:")
		assert.Contains(t, out, "Bye.")
	})

	t.Run("unfixable_permissions_are_reported", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)
		readonly := afero.NewReadOnlyFs(f.fs)

		var out bytes.Buffer
		session := repl.NewSession(f.cfg, f.favs, repl.Options{
			FS:       readonly,
			Launcher: launcher.New(readonly, clockwork.NewFakeClockAt(testClockTime), f.starter),
			In:       strings.NewReader("discord\nexit\n"),
			Out:      &out,
		})
		require.NoError(t, session.Run())

		assert.Contains(t, out.String(), "Cannot make Discord.AppImage executable")
		f.starter.AssertNotCalled(t, "Start")
	})
}

func TestSession_Favorites(t *testing.T) {
	t.Parallel()

	t.Run("fav_stores_the_catalogue_casing", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "fav discord\nexit\n")

		assert.Contains(t, out, "Added Discord to favorites.")
		assert.Equal(t, []string{"Discord"}, f.favs.Names())
	})

	t.Run("fav_of_unknown_name_is_stored_as_typed", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "fav Ghost\nexit\n")

		assert.Contains(t, out, "Added Ghost to favorites.")
		assert.True(t, f.favs.Contains("Ghost"))
	})

	t.Run("fav_of_existing_favorite_is_a_noop", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, []string{"Discord"})

		out := f.run(t, "fav DISCORD\nexit\n")

		assert.Contains(t, out, "already a favorite")
		assert.Equal(t, []string{"Discord"}, f.favs.Names())
	})

	t.Run("unfav_removes_case_insensitively", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, []string{"Discord"})

		out := f.run(t, "unfav dISCORd\nexit\n")

		assert.Contains(t, out, "Removed dISCORd from favorites.")
		assert.False(t, f.favs.Contains("Discord"))
	})

	t.Run("unfav_of_absent_name_reports", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "unfav Ghost\nexit\n")

		assert.Contains(t, out, "Ghost is not a favorite.")
	})

	t.Run("bare_fav_and_unfav_print_usage", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, nil, nil)

		out := f.run(t, "fav\nunfav\nexit\n")

		assert.Contains(t, out, "Usage: fav <name>")
		assert.Contains(t, out, "Usage: unfav <name>")
	})

	t.Run("extra_fav_tokens_are_ignored", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t, []string{"Discord.AppImage"}, nil)

		out := f.run(t, "fav discord -igpu\nexit\n")

		assert.Contains(t, out, "Added Discord to favorites.")
		assert.Equal(t, []string{"Discord"}, f.favs.Names())
	})
}
