package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/platform/tui"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game, press b while paused or after game over to return.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	base, err := engineConfig()
	if err != nil {
		return err
	}

	logger := newLogger("tetris")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// The menu's difficulty picker replaces --difficulty per game.
	return tui.RunSession(tui.SessionOptions{
		Store:   store,
		Player:  playerName(),
		Source:  storage.SourceTerminal,
		Config:  func() config.TetrisConfig { return base },
		Logger:  logger,
		Runtime: runtimeConfig(),
	})
}
