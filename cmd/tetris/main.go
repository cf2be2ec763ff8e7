// tetris is a falling-block puzzle you can play in the terminal, over SSH,
// or installed on a phone as a web app served by the same binary.
//
// Usage:
//
//	tetris play [mode]       - Play in this terminal
//	tetris menu              - Pick a mode and difficulty interactively
//	tetris serve             - Serve the web app (and optionally SSH)
//	tetris scores [mode]     - Show high scores
//	tetris list              - List game modes
//	tetris icons             - Write the app icons as PNG files
//	tetris conformance       - Check the web app in a real browser
//	tetris replay <file>     - Re-simulate a recorded game
//	tetris controls          - Show every key and touch binding
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Engine config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris for the terminal, SSH and the browser",
	Long: `Tetris runs one engine behind three front-ends: this terminal,
SSH sessions, and an installable web app for desktop and phone browsers.

Available commands:
  play         - Play a mode directly
  menu         - Interactive mode and difficulty picker
  serve        - Serve the web app, optionally SSH too
  scores       - View high scores
  list         - Show game modes
  icons        - Write the app icons
  conformance  - Run the browser checks against the web app
  replay       - Verify a recorded game
  controls     - Show the controls reference

Examples:
  tetris play
  tetris play tetris_sprint --difficulty hard
  tetris serve --http :8080 --ssh :23234 --qr
  tetris scores --source web`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		// Registry-created games read these on every reset.
		tetris.SetConfigPath(flagConfig)
		tetris.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(conformanceCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(controlsCmd)
}
