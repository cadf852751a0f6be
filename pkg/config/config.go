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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LunaroProject/lunaro/pkg/helpers/syncutil"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	ini "gopkg.in/ini.v1"
)

const (
	CfgEnv   = "LUNARO_CFG"
	DebugEnv = "LUNARO_DEBUG"

	GPUDedicated  = "dgpu"
	GPUIntegrated = "igpu"
)

// Values holds every setting recognized in the config file. Keys not
// listed here are ignored on load, so a file written by a newer version
// keeps working with an older binary.
type Values struct {
	AppImageDir string `ini:"APPIMAGE_DIR" validate:"required"`
	LogDir      string `ini:"LOG_DIR"      validate:"required"`
	DefaultGPU  string `ini:"DEFAULT_GPU"  validate:"oneof=dgpu igpu"`
}

var BaseDefaults = Values{
	AppImageDir: "~/pwogams",
	LogDir:      "~/lunarologs",
	DefaultGPU:  GPUDedicated,
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Keep the on-disk format plain KEY=value.
	ini.PrettyFormat = false
}

func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		mu:       syncutil.RWMutex{},
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	if _, err := os.Stat(c.cfgPath); err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	// A bad config line must never block startup, so lines the parser
	// can't make sense of are skipped rather than treated as errors.
	file, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
	}, c.cfgPath)
	if err != nil {
		log.Warn().Err(err).Msg("config file unreadable, using defaults")
		c.vals = c.defaults
		return nil
	}

	// Start with defaults, then map file values on top. Keys not present
	// in the file retain their default values.
	newVals := c.defaults
	if err := file.MapTo(&newVals); err != nil {
		log.Warn().Err(err).Msg("config file malformed, using defaults")
		c.vals = c.defaults
		return nil
	}

	c.vals = newVals
	c.revalidate()

	return nil
}

// revalidate resets any field holding an invalid value back to its
// default. A hand-edited config can never leave the launcher without a
// usable setting. Caller must hold mu.
func (c *Instance) revalidate() {
	err := validate.Struct(&c.vals)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		log.Warn().Err(err).Msg("config validation failed, using defaults")
		c.vals = c.defaults
		return
	}

	for _, fieldErr := range fieldErrs {
		switch fieldErr.StructField() {
		case "AppImageDir":
			log.Warn().Msgf("invalid APPIMAGE_DIR %q, using default", c.vals.AppImageDir)
			c.vals.AppImageDir = c.defaults.AppImageDir
		case "LogDir":
			log.Warn().Msgf("invalid LOG_DIR %q, using default", c.vals.LogDir)
			c.vals.LogDir = c.defaults.LogDir
		case "DefaultGPU":
			log.Warn().Msgf("invalid DEFAULT_GPU %q, using default", c.vals.DefaultGPU)
			c.vals.DefaultGPU = c.defaults.DefaultGPU
		}
	}
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	file := ini.Empty()
	if err := ini.ReflectFrom(file, &c.vals); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the location of the config file backing this instance.
func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

// AppImageDir returns the directory scanned for AppImage bundles, with
// any leading ~ expanded.
func (c *Instance) AppImageDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ExpandHome(c.vals.AppImageDir)
}

// LogDir returns the directory launch logs are written to, with any
// leading ~ expanded.
func (c *Instance) LogDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ExpandHome(c.vals.LogDir)
}

// DefaultGPU returns the GPU used when a launch names no GPU flag,
// either GPUDedicated or GPUIntegrated.
func (c *Instance) DefaultGPU() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DefaultGPU
}
