package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.Camera.Preset != "default" {
		t.Errorf("Expected default camera preset, got %s", cfg.Camera.Preset)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	body := "port: \"9090\"\nlog_level: debug\ncamera:\n  preset: city\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.Camera.Preset != "city" {
		t.Errorf("Expected city preset, got %s", cfg.Camera.Preset)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NAV_PORT", "7000")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Expected env override 7000, got %s", cfg.Port)
	}
}

func TestLoad_InvalidPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  preset: cinematic\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for unknown preset")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
