package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/icons"
)

var (
	flagIconsOut   string
	flagIconsSizes []int
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Write the app icons as PNG files",
	Long: `Render the purple-on-navy app icon at each size plus a favicon.ico.
The server renders the same icons in memory; this is for packaging.

Examples:
  tetris icons
  tetris icons --out ./dist/icons --sizes 192,512,1024`,
	Args: cobra.NoArgs,
	RunE: runIcons,
}

func init() {
	iconsCmd.Flags().StringVar(&flagIconsOut, "out", "icons", "Output directory")
	iconsCmd.Flags().IntSliceVar(&flagIconsSizes, "sizes", icons.DefaultSizes, "Square sizes in pixels")
}

func runIcons(_ *cobra.Command, _ []string) error {
	for _, size := range flagIconsSizes {
		if size < 16 || size > 4096 {
			return fmt.Errorf("icon size %d out of range 16..4096", size)
		}
	}

	paths, err := icons.WriteSet(flagIconsOut, flagIconsSizes...)
	if err != nil {
		return err
	}

	ico, err := icons.Favicon()
	if err != nil {
		return err
	}
	favicon := filepath.Join(flagIconsOut, "favicon.ico")
	if err := os.WriteFile(favicon, ico, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", favicon, err)
	}

	for _, p := range append(paths, favicon) {
		fmt.Println("wrote", p)
	}
	return nil
}
