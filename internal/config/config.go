// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and management for Friday.
//
// Configuration comes from ~/.friday/config.toml with environment variable
// overrides applied on top, falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/haloaistud/friday-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete Friday configuration.
type Config struct {
	// Gemini API configuration
	Gemini GeminiConfig `toml:"gemini"`

	// Voice capture configuration
	Voice VoiceConfig `toml:"voice"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// GeminiConfig contains Generative Language API settings.
type GeminiConfig struct {
	// APIKey is the Gemini API key.
	APIKey string `toml:"api_key"`
	// Model is the model used for chat and transcription.
	Model string `toml:"model"`
	// SearchGrounding enables the search grounding tool.
	SearchGrounding bool `toml:"search_grounding"`
}

// VoiceConfig contains voice capture settings.
type VoiceConfig struct {
	// Enabled toggles voice capture. When false the record key is ignored.
	Enabled bool `toml:"enabled"`
	// MaxSeconds caps a single capture (0 = unlimited).
	MaxSeconds int `toml:"max_seconds"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// ShowTimestamps displays message timestamps in the chat view.
	ShowTimestamps bool `toml:"show_timestamps"`
	// ShowSources displays source lists under grounded answers.
	ShowSources bool `toml:"show_sources"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:           "gemini-2.5-flash",
			SearchGrounding: true,
		},
		Voice: VoiceConfig{
			Enabled:    true,
			MaxSeconds: 120,
		},
		UI: UIConfig{
			ShowTimestamps: false,
			ShowSources:    true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the Friday configuration directory (~/.friday).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".friday"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions tightens config file permissions to 0600, since
// the file holds the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads the configuration file, falling back to defaults when it does
// not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadFromPath(cfg, path); err != nil {
				return nil, err
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}

// Save writes the configuration to the default location.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}

// =============================================================================
// ENV OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides. FRIDAY_API_KEY
// wins over GEMINI_API_KEY when both are set.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if key := os.Getenv("FRIDAY_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if model := os.Getenv("FRIDAY_MODEL"); model != "" {
		c.Gemini.Model = model
	}
	if v := os.Getenv("FRIDAY_VOICE"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Voice.Enabled = enabled
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model must not be empty")
	}
	if c.Voice.MaxSeconds < 0 {
		return fmt.Errorf("voice.max_seconds must not be negative")
	}
	return nil
}

// IsConfigured reports whether an API key is available.
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}
