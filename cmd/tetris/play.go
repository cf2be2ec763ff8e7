package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
	"github.com/vovakirdan/tetris-pwa/internal/platform/tui"
	"github.com/vovakirdan/tetris-pwa/internal/registry"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in this terminal",
	Long: `Start a game in the terminal. The mode defaults to marathon ("tetris").

Controls:
  Left/Right, h/l, a/d  - Move
  Down, j, s            - Soft drop
  Up, k, w, x           - Rotate clockwise
  z                     - Rotate counter-clockwise
  Space                 - Hard drop
  P/Esc                 - Pause
  Enter                 - Start, resume or restart
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Slower gravity
  normal - Guideline speed curve
  hard   - Start at level 5
  fixed  - Level never changes

Examples:
  tetris play
  tetris play tetris_sprint
  tetris play --difficulty hard
  tetris play --seed 42 --record game.jsonl.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the game to this file")
}

func runPlay(_ *cobra.Command, args []string) error {
	id := string(tetris.ModeMarathon)
	if len(args) == 1 {
		id = args[0]
	}
	game, err := newPlayGame(id)
	if err != nil {
		return err
	}

	logger := newLogger("tetris")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, runtimeConfig(), tui.PlayOptions{
		Store:      store,
		Player:     playerName(),
		Source:     storage.SourceTerminal,
		RecordPath: flagRecord,
		Logger:     logger,
	})
}

// newPlayGame creates the mode with the engine config pinned, so a bad
// --config fails here instead of falling back to the defaults.
func newPlayGame(id string) (registry.Game, error) {
	if !registry.Exists(id) {
		return nil, unknownMode(id)
	}
	cfg, err := engineConfig()
	if err != nil {
		return nil, err
	}

	game, err := registry.Create(id)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	if tg, ok := game.(*tetris.Game); ok {
		tg.SetConfig(cfg)
	}
	return game, nil
}
