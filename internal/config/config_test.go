package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aselbek/carelink/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr: got %q", cfg.Addr)
	}
	if cfg.DatabasePath != "carelink.db" {
		t.Fatalf("database_path: got %q", cfg.DatabasePath)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("timeout: got %v", cfg.APITimeout)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CARELINK_ADDR", ":9090")
	t.Setenv("CARELINK_DATABASE_PATH", "/tmp/other.db")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DatabasePath != "/tmp/other.db" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadConfigFileOverridesEnv(t *testing.T) {
	t.Setenv("CARELINK_ADDR", ":9090")

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "addr: \":7070\"\nseed_path: \"seed.json\"\ntimeout: 5s\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("file must override env, got %q", cfg.Addr)
	}
	if cfg.SeedPath != "seed.json" {
		t.Fatalf("seed_path: got %q", cfg.SeedPath)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Fatalf("timeout: got %v", cfg.APITimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
