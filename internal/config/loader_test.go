package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "nord" {
		t.Errorf("Expected theme 'nord', got '%s'", cfg.Theme)
	}
	if cfg.StartView != "dashboard" {
		t.Errorf("Expected start view 'dashboard', got '%s'", cfg.StartView)
	}
	if !cfg.Notifications {
		t.Error("Expected notifications to be enabled by default")
	}
	if cfg.DataDir == "" {
		t.Error("Expected a default data dir")
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}

	if got := cfg.DatabasePath(); got != filepath.Join("/data", "trackboard.db") {
		t.Errorf("DatabasePath = %s", got)
	}
	if got := cfg.LockPath(); got != filepath.Join("/data", "trackboard.lock") {
		t.Errorf("LockPath = %s", got)
	}

	cfg.DBPath = "/elsewhere/db.sqlite"
	if got := cfg.DatabasePath(); got != "/elsewhere/db.sqlite" {
		t.Errorf("DatabasePath with override = %s", got)
	}
}

func TestLoadFiles_MissingFilesUseDefaults(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if cfg.Theme != "nord" || cfg.LogLevel != "info" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFiles_LaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	local := filepath.Join(dir, "local.yaml")

	if err := os.WriteFile(global, []byte("theme: dracula\nuser_email: me@example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("theme: gruvbox\nnotifications: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFiles(global, local)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if cfg.Theme != "gruvbox" {
		t.Errorf("Expected theme 'gruvbox', got '%s'", cfg.Theme)
	}
	if cfg.UserEmail != "me@example.com" {
		t.Errorf("Expected user email from global file, got '%s'", cfg.UserEmail)
	}
	if cfg.Notifications {
		t.Error("Expected notifications to be disabled")
	}
}

func TestLoadFiles_EnvOverrides(t *testing.T) {
	t.Setenv("TRACKBOARD_USER_EMAIL", "env@example.com")
	t.Setenv("TRACKBOARD_DATA_DIR", "~/tb")

	cfg, err := LoadFiles()
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if cfg.UserEmail != "env@example.com" {
		t.Errorf("Expected env user email, got '%s'", cfg.UserEmail)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if cfg.DataDir != filepath.Join(home, "tb") {
		t.Errorf("Expected expanded data dir, got '%s'", cfg.DataDir)
	}
}

func TestWriteDefaultIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	if cfg.StartView != "dashboard" {
		t.Errorf("Expected start view 'dashboard', got '%s'", cfg.StartView)
	}
}
