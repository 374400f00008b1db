// Copyright (c) 2025 tellerdesk
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Server.BaseURL == "" {
		t.Error("Default config should have a base URL")
	}
	if cfg.Server.TimeoutSecs <= 0 {
		t.Error("Default config should have a positive timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https URL", func(c *Config) { c.Server.BaseURL = "https://bank.example.com" }, false},
		{"missing scheme", func(c *Config) { c.Server.BaseURL = "bank.example.com" }, true},
		{"bad scheme", func(c *Config) { c.Server.BaseURL = "ftp://bank.example.com" }, true},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }, true},
		{"huge timeout", func(c *Config) { c.Server.TimeoutSecs = 9999 }, true},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")

	cfg := Default()
	cfg.Server.BaseURL = "http://localhost:9090"
	cfg.Server.TimeoutSecs = 30
	cfg.UI.Theme = "light"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Server.BaseURL != "http://localhost:9090" {
		t.Errorf("BaseURL = %q, want %q", loaded.Server.BaseURL, "http://localhost:9090")
	}
	if loaded.Server.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", loaded.Server.TimeoutSecs)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %q, want %q", loaded.UI.Theme, "light")
	}
}

func TestLoadFromPath_SparseFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")

	// Only the base URL is set; everything else should fall back to defaults.
	content := "[server]\nbase_url = \"http://10.0.0.5:8080\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Server.BaseURL != "http://10.0.0.5:8080" {
		t.Errorf("BaseURL = %q, want %q", cfg.Server.BaseURL, "http://10.0.0.5:8080")
	}
	if cfg.Server.TimeoutSecs != Default().Server.TimeoutSecs {
		t.Errorf("TimeoutSecs should default, got %d", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme should default to dark, got %q", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TELLER_API_URL", "http://override:7070")
	t.Setenv("TELLER_TIMEOUT_SECS", "45")
	t.Setenv("TELLER_THEME", "LIGHT")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.BaseURL != "http://override:7070" {
		t.Errorf("BaseURL = %q, want env override", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 45 {
		t.Errorf("TimeoutSecs = %d, want 45", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want %q", cfg.UI.Theme, "light")
	}
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("TELLER_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	want := cfg.Server.TimeoutSecs
	cfg.ApplyEnvOverrides()

	if cfg.Server.TimeoutSecs != want {
		t.Errorf("TimeoutSecs = %d, want unchanged %d", cfg.Server.TimeoutSecs, want)
	}
}
