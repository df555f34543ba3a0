// Copyright (c) 2025 Friday AI
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Gemini.Model == "" {
		t.Error("default model must not be empty")
	}
	if !cfg.Gemini.SearchGrounding {
		t.Error("search grounding should default on")
	}
	if !cfg.Voice.Enabled {
		t.Error("voice should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[gemini]
api_key = "test-key"
model = "gemini-2.5-pro"
search_grounding = false

[voice]
enabled = false
max_seconds = 30

[ui]
show_timestamps = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := LoadFromPath(cfg, path); err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("APIKey = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.SearchGrounding {
		t.Error("search grounding should be off")
	}
	if cfg.Voice.Enabled || cfg.Voice.MaxSeconds != 30 {
		t.Errorf("voice config: %+v", cfg.Voice)
	}
	if !cfg.UI.ShowTimestamps {
		t.Error("show_timestamps should be on")
	}
	// Unset sections keep defaults.
	if !cfg.UI.ShowSources {
		t.Error("show_sources should keep its default")
	}
}

func TestLoadFixesInsecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[gemini]\napi_key = \"k\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := LoadFromPath(cfg, path); err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")
	t.Setenv("FRIDAY_API_KEY", "friday-env-key")
	t.Setenv("FRIDAY_MODEL", "gemini-env-model")
	t.Setenv("FRIDAY_VOICE", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	// FRIDAY_API_KEY wins over GEMINI_API_KEY.
	if cfg.Gemini.APIKey != "friday-env-key" {
		t.Errorf("APIKey = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-env-model" {
		t.Errorf("Model = %q", cfg.Gemini.Model)
	}
	if cfg.Voice.Enabled {
		t.Error("FRIDAY_VOICE=false should disable voice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }, true},
		{"negative capture cap", func(c *Config) { c.Voice.MaxSeconds = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsConfigured(t *testing.T) {
	cfg := Default()
	if cfg.IsConfigured() {
		t.Error("no key should mean not configured")
	}
	cfg.Gemini.APIKey = "  "
	if cfg.IsConfigured() {
		t.Error("whitespace key should mean not configured")
	}
	cfg.Gemini.APIKey = "key"
	if !cfg.IsConfigured() {
		t.Error("expected configured")
	}
}

func TestWatchPathReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[gemini]\nmodel = \"first\"\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var mu sync.Mutex
	var got string
	loaded := make(chan struct{}, 1)

	w, err := WatchPath(path, func(cfg *Config) {
		mu.Lock()
		got = cfg.Gemini.Model
		mu.Unlock()
		select {
		case loaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchPath: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[gemini]\nmodel = \"second\"\n"), 0600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire")
	}

	mu.Lock()
	defer mu.Unlock()
	if got != "second" {
		t.Errorf("reloaded model = %q, want %q", got, "second")
	}
}
