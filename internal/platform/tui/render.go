package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
)

// colorStyles maps core.Color to lipgloss styles. Piece colors come from
// the same hex values the browser palette uses; lipgloss degrades them on
// terminals without true color.
var colorStyles = func() map[core.Color]lipgloss.Style {
	m := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		core.ColorBrightWhite: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true),
		core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
	for _, k := range tetris.Kinds {
		m[k.Color()] = lipgloss.NewStyle().Foreground(lipgloss.Color(k.Hex()))
	}
	return m
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := colorStyles[c]; ok {
		return st
	}
	return colorStyles[core.ColorDefault]
}
