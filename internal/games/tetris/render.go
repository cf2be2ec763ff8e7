package tetris

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tetris-pwa/internal/core"
)

const (
	cellW  = 2  // terminal columns per board cell
	panelW = 14 // side panel width
)

// StatsPanel is the wide-layout stats surface drawn beside the board.
type StatsPanel struct {
	stats Stats
}

// StatsChanged implements StatsObserver.
func (p *StatsPanel) StatsChanged(s Stats) { p.stats = s }

// Fields returns the label/value pairs as displayed.
func (p *StatsPanel) Fields() [3][2]string {
	return [3][2]string{
		{"SCORE", strconv.Itoa(p.stats.Score)},
		{"LEVEL", strconv.Itoa(p.stats.Level)},
		{"LINES", strconv.Itoa(p.stats.Lines)},
	}
}

// StatsBar is the compact stats surface drawn above the board.
type StatsBar struct {
	stats Stats
}

// StatsChanged implements StatsObserver.
func (b *StatsBar) StatsChanged(s Stats) { b.stats = s }

// Fields returns the label/value pairs as displayed.
func (b *StatsBar) Fields() [3][2]string {
	return [3][2]string{
		{"SCORE", strconv.Itoa(b.stats.Score)},
		{"LVL", strconv.Itoa(b.stats.Level)},
		{"LINES", strconv.Itoa(b.stats.Lines)},
	}
}

// Text returns the bar line.
func (b *StatsBar) Text() string {
	f := b.Fields()
	parts := make([]string, len(f))
	for i, kv := range f {
		parts[i] = kv[0] + " " + kv[1]
	}
	return strings.Join(parts, "  ")
}

// Surfaces returns the two stats surfaces the game keeps subscribed.
func (g *Game) Surfaces() (*StatsPanel, *StatsBar) {
	return g.panel, g.bar
}

// Render draws the board, preview, stats surfaces and overlay.
func (g *Game) Render(dst *core.Screen) {
	cols, rows := g.board.Cols(), g.board.Rows()
	boardW, boardH := cols*cellW+2, rows+2

	if dst.Width() < boardW || dst.Height() < boardH+1 {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", boardW, boardH+1))
		return
	}

	showPanel := dst.Width() >= boardW+panelW+2
	totalW := boardW
	if showPanel {
		totalW += panelW + 2
	}
	ox, oy := (dst.Width()-totalW)/2, 1

	dst.DrawTextColored(ox, 0, g.bar.Text(), core.ColorBrightWhite)
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorGray)

	for y := range rows {
		for x := range cols {
			if k := g.board.At(x, y); k != Empty {
				drawCell(dst, ox+1+x*cellW, oy+1+y, '█', k.Color())
			}
		}
	}

	if g.hasActive {
		// Cells still above the top row are hidden behind the frame.
		well := core.NewRect(0, 0, cols, rows)
		ghost := g.active.Moved(0, g.board.DropDistance(g.active))
		for _, c := range ghost.Cells() {
			if well.Contains(c.X, c.Y) {
				drawCell(dst, ox+1+c.X*cellW, oy+1+c.Y, '░', core.ColorGray)
			}
		}
		for _, c := range g.active.Cells() {
			if well.Contains(c.X, c.Y) {
				drawCell(dst, ox+1+c.X*cellW, oy+1+c.Y, '█', g.active.Kind.Color())
			}
		}
	}

	if showPanel {
		g.drawPanel(dst, ox+boardW+2, oy)
	}

	if g.banner != "" {
		x := ox + (boardW-len(g.banner))/2
		dst.DrawTextColored(x, oy+boardH/3, g.banner, core.ColorBrightYellow)
	}

	if ov := g.Overlay(); ov.Visible {
		drawOverlay(dst, core.NewRect(ox+1, oy+boardH/2-4, boardW-2, 8), ov)
	}
}

func (g *Game) drawPanel(dst *core.Screen, x, y int) {
	dst.DrawBox(core.NewRect(x, y, panelW, 5), core.ColorGray)
	dst.DrawText(x+2, y, " NEXT ")
	if g.next != Empty {
		for _, c := range previewOf(g.next).Cells {
			drawCell(dst, x+3+c.X*cellW, y+2+c.Y, '█', g.next.Color())
		}
	}

	row := y + 6
	for _, kv := range g.panel.Fields() {
		dst.DrawTextColored(x+1, row, kv[0], core.ColorGray)
		dst.DrawTextColored(x+1, row+1, kv[1], core.ColorBrightWhite)
		row += 3
	}

	if g.mode == ModeSprint {
		dst.DrawTextColored(x+1, row, "TIME", core.ColorGray)
		dst.DrawTextColored(x+1, row+1, formatClock(g.Elapsed()), core.ColorBrightWhite)
		row += 3
		dst.DrawTextColored(x+1, row, "GOAL", core.ColorGray)
		dst.DrawTextColored(x+1, row+1, fmt.Sprintf("%d lines", g.cfg.Sprint.TargetLines), core.ColorBrightWhite)
	}
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

func drawOverlay(dst *core.Screen, r core.Rect, ov Overlay) {
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)

	center := func(y int, s string, c core.Color) {
		x := core.Clamp(r.X+(r.W-len([]rune(s)))/2, r.X+1, r.Right()-1)
		dst.DrawTextColored(x, y, s, c)
	}
	center(r.Y+1, ov.Title, core.ColorBrightYellow)
	for i, line := range wrap(ov.Message, r.W-4) {
		if i > 2 {
			break
		}
		center(r.Y+2+i, line, core.ColorWhite)
	}
	center(r.Bottom()-2, "[ "+ov.Button+" ]", core.ColorBrightCyan)
}

// wrap breaks s into lines no wider than width.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
