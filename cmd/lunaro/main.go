//go:build linux

/*
Lunaro
Copyright (c) 2025 The Lunaro Project Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of Lunaro.

Lunaro is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Lunaro is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Lunaro.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LunaroProject/lunaro/pkg/config"
	"github.com/LunaroProject/lunaro/pkg/favorites"
	"github.com/LunaroProject/lunaro/pkg/helpers"
	"github.com/LunaroProject/lunaro/pkg/launcher"
	"github.com/LunaroProject/lunaro/pkg/repl"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := helpers.InitLogging(config.StateDir(), nil); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	sessionID := uuid.New()
	log.Info().Msgf("lunaro %s starting, session %s", config.AppVersion, sessionID)

	cfg, err := config.NewConfig(config.ConfigDir(), config.BaseDefaults)
	if err != nil {
		log.Error().Err(err).Msg("error loading config")
		return fmt.Errorf("error loading config: %w", err)
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	fsys := afero.NewOsFs()

	// Missing directories are created up front so the first listing, the
	// first favorite and the first launch log never fail on a fresh
	// install.
	for _, dir := range []string{cfg.AppImageDir(), cfg.LogDir(), config.DataDir()} {
		if mkErr := fsys.MkdirAll(dir, 0o755); mkErr != nil {
			log.Warn().Err(mkErr).Msgf("could not create %s", dir)
		}
	}

	favs, err := favorites.NewStore(fsys, config.FavoritesPath())
	if err != nil {
		log.Error().Err(err).Msg("error loading favorites")
		return fmt.Errorf("error loading favorites: %w", err)
	}

	session := repl.NewSession(cfg, favs, repl.Options{
		FS:       fsys,
		Launcher: launcher.New(fsys, nil, nil),
	})

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- session.Run()
	}()

	select {
	case <-sigs:
		// ^C at the prompt ends the session the way exit does. Launched
		// bundles sit in their own sessions and are unaffected.
		_, _ = fmt.Fprintln(os.Stdout)
		return nil
	case err := <-done:
		return err
	}
}
