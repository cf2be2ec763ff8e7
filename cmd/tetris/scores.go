package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
	"github.com/vovakirdan/tetris-pwa/internal/platform/tui"
	"github.com/vovakirdan/tetris-pwa/internal/registry"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresSource      string
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores for a mode, from every front-end or
only one of them.

Examples:
  tetris scores
  tetris scores tetris_sprint --limit 20
  tetris scores --source web
  tetris scores -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresSource, "source", "", "Only scores from terminal, ssh or web")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse scores in a table")
}

func runScores(_ *cobra.Command, args []string) error {
	id := string(tetris.ModeMarathon)
	if len(args) == 1 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return unknownMode(id)
	}
	switch flagScoresSource {
	case "", storage.SourceTerminal, storage.SourceSSH, storage.SourceWeb:
	default:
		return fmt.Errorf("unknown source %q (want terminal, ssh or web)", flagScoresSource)
	}
	if flagScoresLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", flagScoresLimit)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresInteractive {
		rt := runtimeConfig()
		_, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
		return err
	}

	scores, err := store.TopScoresFrom(id, flagScoresSource, flagScoresLimit)
	if err != nil {
		return err
	}

	title := id
	for _, g := range registry.List() {
		if g.ID == id {
			title = g.Title
		}
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-5s  %-8s  %s\n", "Rank", "Player", "Score", "Level", "Lines", "From", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-5s  %-8s  %s\n", "----", "------", "-----", "-----", "-----", "----", "----")

	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %-5d  %-8s  %s\n",
			i+1, e.Player, e.Score, e.Level, e.Lines, e.Source, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(id); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
