package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	HTTPAddr    string        // PWA listen address
	SSHAddr     string        // SSH listen address, empty disables SSH
	HostKeyPath string        // SSH host key, generated on first run
	DBPath      string        // sqlite score database
	RecordDir   string        // replay output directory, empty disables recording
	PublicURL   string        // URL advertised in logs and the QR code
	IdleTimeout time.Duration // SSH idle timeout
	TickRate    int           // web session simulation rate
}

// DefaultServerConfig returns the serve defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:    ":8080",
		HostKeyPath: defaultHostKeyPath(),
		DBPath:      "~/.tetris/scores.db",
		IdleTimeout: 10 * time.Minute,
		TickRate:    60,
	}
}

func defaultHostKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ssh/tetris_host_ed25519"
	}
	return filepath.Join(home, ".tetris", "ssh", "host_ed25519")
}

// LoadDotEnv loads KEY=VALUE files into the process environment.
// Missing files are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TETRIS_* environment variables.
func (c *ServerConfig) ApplyEnv() error {
	if v := os.Getenv("TETRIS_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("TETRIS_SSH_ADDR"); v != "" {
		c.SSHAddr = v
	}
	if v := os.Getenv("TETRIS_HOST_KEY"); v != "" {
		c.HostKeyPath = v
	}
	if v := os.Getenv("TETRIS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TETRIS_RECORD_DIR"); v != "" {
		c.RecordDir = v
	}
	if v := os.Getenv("TETRIS_PUBLIC_URL"); v != "" {
		c.PublicURL = v
	}
	if v := os.Getenv("TETRIS_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TETRIS_IDLE_TIMEOUT: %w", err)
		}
		c.IdleTimeout = d
	}
	if v := os.Getenv("TETRIS_TICK_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: TETRIS_TICK_RATE must be a positive integer, got %q", v)
		}
		c.TickRate = n
	}
	return nil
}
