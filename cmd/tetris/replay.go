package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded game and verify its score",
	Long: `Load a recording written by 'tetris play --record' or
'tetris serve --record-dir', run it on a fresh engine and compare the
final score, level and lines with what was recorded.

Examples:
  tetris replay game.jsonl.zst
  tetris replay ./replays/tetris-3f0c...-42.jsonl.zst`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.ReadFile(args[0])
	if err != nil {
		return err
	}
	h := rec.Header

	fmt.Printf("Mode:     %s\n", h.Mode)
	if h.Player != "" {
		fmt.Printf("Player:   %s (%s)\n", h.Player, h.Source)
	}
	fmt.Printf("Started:  %s\n", h.StartedAt.Local().Format(time.DateTime))
	fmt.Printf("Seed:     %d at %d ticks/s\n", h.Seed, h.TickRate)
	fmt.Printf("Inputs:   %d\n", len(rec.Inputs))

	res, err := replay.Simulate(rec)
	st := res.Stats()
	fmt.Printf("Result:   score %d, level %d, lines %d (%s)\n", st.Score, st.Level, st.Lines, res.Snapshot.Phase)
	if res.Rejected > 0 {
		fmt.Printf("Skipped:  %d unknown actions\n", res.Rejected)
	}

	switch {
	case errors.Is(err, replay.ErrMismatch):
		return err
	case err != nil:
		return fmt.Errorf("simulate: %w", err)
	case rec.End == nil:
		fmt.Println("Verdict:  recording ends before game over, nothing to verify")
	default:
		fmt.Println("Verdict:  matches the recorded result")
	}
	return nil
}
