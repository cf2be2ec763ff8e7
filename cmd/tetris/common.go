package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// engineConfig loads the engine config named by --config and applies --difficulty.
func engineConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	if p := config.ParsePreset(flagDifficulty); p != "" {
		config.ApplyTetrisPreset(&cfg, p)
	}
	return cfg, nil
}

// openStore opens the score database. Play works without one, so a
// failure is only a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// playerName is the local account name used for terminal scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if v := os.Getenv("USER"); v != "" {
		return v
	}
	return "player"
}

func unknownMode(id string) error {
	return fmt.Errorf("unknown mode %q, run 'tetris list' to see available modes", id)
}
