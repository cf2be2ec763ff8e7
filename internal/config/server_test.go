package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServerApplyEnv(t *testing.T) {
	t.Setenv("TETRIS_HTTP_ADDR", ":9999")
	t.Setenv("TETRIS_SSH_ADDR", ":2222")
	t.Setenv("TETRIS_IDLE_TIMEOUT", "90s")
	t.Setenv("TETRIS_TICK_RATE", "30")

	cfg := DefaultServerConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.HTTPAddr != ":9999" || cfg.SSHAddr != ":2222" {
		t.Errorf("addresses not overridden: %+v", cfg)
	}
	if cfg.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, expected 90s", cfg.IdleTimeout)
	}
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.TickRate)
	}
}

func TestServerApplyEnvRejectsBadTickRate(t *testing.T) {
	t.Setenv("TETRIS_TICK_RATE", "fast")
	cfg := DefaultServerConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric tick rate")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TETRIS_PUBLIC_URL=http://10.0.0.5:8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TETRIS_PUBLIC_URL", "")
	os.Unsetenv("TETRIS_PUBLIC_URL")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	cfg := DefaultServerConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.PublicURL != "http://10.0.0.5:8080" {
		t.Errorf("PublicURL = %q, expected value from .env", cfg.PublicURL)
	}
}
