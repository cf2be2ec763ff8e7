package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tetris-pwa/internal/config"
)

func TestServerConfigLayering(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("TETRIS_SSH_ADDR=:2222\nTETRIS_TICK_RATE=30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TETRIS_HTTP_ADDR", ":9000")

	if err := serveCmd.Flags().Set("env", envFile); err != nil {
		t.Fatal(err)
	}
	if err := serveCmd.Flags().Set("record-dir", dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		flagEnvFiles = []string{".env"}
		flagRecordDir = ""
		serveCmd.Flags().Lookup("record-dir").Changed = false
		serveCmd.Flags().Lookup("env").Changed = false
		os.Unsetenv("TETRIS_SSH_ADDR")
		os.Unsetenv("TETRIS_TICK_RATE")
	})

	sc, err := serverConfig(serveCmd)
	if err != nil {
		t.Fatalf("serverConfig: %v", err)
	}
	if sc.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr = %q, want env value :9000", sc.HTTPAddr)
	}
	if sc.SSHAddr != ":2222" || sc.TickRate != 30 {
		t.Errorf("env file not applied: ssh=%q tick=%d", sc.SSHAddr, sc.TickRate)
	}
	if sc.RecordDir != dir {
		t.Errorf("RecordDir = %q, want flag value %q", sc.RecordDir, dir)
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		sc   config.ServerConfig
		want string
	}{
		{"configured", config.ServerConfig{HTTPAddr: ":8080", PublicURL: "https://tetris.example"}, "https://tetris.example"},
		{"explicit host", config.ServerConfig{HTTPAddr: "127.0.0.1:9000"}, "http://127.0.0.1:9000/"},
		{"ipv6 host", config.ServerConfig{HTTPAddr: "[::1]:9000"}, "http://[::1]:9000/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := publicURL(tt.sc); got != tt.want {
				t.Errorf("publicURL() = %q, want %q", got, tt.want)
			}
		})
	}

	got := publicURL(config.ServerConfig{HTTPAddr: ":8080"})
	if !strings.HasPrefix(got, "http://") || !strings.HasSuffix(got, ":8080/") {
		t.Errorf("wildcard address gave %q", got)
	}
}
