package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/controls"
)

var flagControlsRaw bool

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "Show every key and touch binding",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		md := controls.Markdown()
		if flagControlsRaw {
			fmt.Print(md)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(runtimeConfig().ScreenW),
		)
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	controlsCmd.Flags().BoolVar(&flagControlsRaw, "raw", false, "Print the Markdown source")
}
