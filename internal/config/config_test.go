package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("default data dir = %q", cfg.DataDir)
	}
	if cfg.AccomplishmentOrder != SortNewestFirst {
		t.Errorf("default order = %q", cfg.AccomplishmentOrder)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".folio.yml")
	content := `title: My Site
author: Jo
port: 9000
accomplishment_order: oldest
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Title != "My Site" || cfg.Author != "Jo" || cfg.Port != 9000 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.AccomplishmentOrder != SortOldestFirst {
		t.Errorf("order = %q, want oldest", cfg.AccomplishmentOrder)
	}
	// Unset keys keep their defaults.
	if cfg.DataDir != "data" {
		t.Errorf("data dir = %q, want default", cfg.DataDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".folio.yml")
	if err := os.WriteFile(path, []byte("port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_PORT", "7777")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7777 {
		t.Errorf("env override lost: port = %d, want 7777", cfg.Port)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".folio.yml")

	cfg := DefaultConfig()
	cfg.Title = "Round Trip"
	cfg.Port = 8123
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "Round Trip" || got.Port != 8123 {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with title", func(c *Config) { c.Title = "x" }, false},
		{"missing title", func(c *Config) { c.Title = "" }, true},
		{"missing data dir", func(c *Config) { c.Title = "x"; c.DataDir = "" }, true},
		{"port too high", func(c *Config) { c.Title = "x"; c.Port = 70000 }, true},
		{"port zero", func(c *Config) { c.Title = "x"; c.Port = 0 }, true},
		{"negative timeout", func(c *Config) { c.Title = "x"; c.ImageTimeoutSec = -1 }, true},
		{"bad order", func(c *Config) { c.Title = "x"; c.AccomplishmentOrder = "sideways" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
