package tetris

import (
	"strings"

	"github.com/vovakirdan/tetris-pwa/internal/core"
)

// Board is the playfield. Row 0 is the top.
type Board struct {
	cols, rows int
	cells      [][]Kind
}

// NewBoard creates an empty board.
func NewBoard(cols, rows int) *Board {
	b := &Board{cols: cols, rows: rows, cells: make([][]Kind, rows)}
	for y := range b.cells {
		b.cells[y] = make([]Kind, cols)
	}
	return b
}

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// At returns the kind locked at (x, y), or Empty outside the board.
func (b *Board) At(x, y int) Kind {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return Empty
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, k Kind) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return
	}
	b.cells[y][x] = k
}

// Fits reports whether every cell is inside the board and vacant.
func (b *Board) Fits(cells [4]core.Point) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= b.cols || c.Y < 0 || c.Y >= b.rows {
			return false
		}
		if b.cells[c.Y][c.X] != Empty {
			return false
		}
	}
	return true
}

// Lock writes the piece into the board.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Cells() {
		b.Set(c.X, c.Y, p.Kind)
	}
}

// ClearFull removes complete rows, shifting everything above down.
// Returns the number of rows removed.
func (b *Board) ClearFull() int {
	kept := make([][]Kind, 0, b.rows)
	for _, row := range b.cells {
		full := true
		for _, k := range row {
			if k == Empty {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, row)
		}
	}

	cleared := b.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]Kind, cleared, b.rows)
	for i := range fresh {
		fresh[i] = make([]Kind, b.cols)
	}
	b.cells = append(fresh, kept...)
	return cleared
}

// DropDistance returns how many rows p can fall before resting.
func (b *Board) DropDistance(p Piece) int {
	d := 0
	for b.Fits(p.Moved(0, d+1).Cells()) {
		d++
	}
	return d
}

// Encode returns one string per row using piece letters and '.' for vacant cells.
func (b *Board) Encode() []string {
	out := make([]string, b.rows)
	var sb strings.Builder
	for y, row := range b.cells {
		sb.Reset()
		for _, k := range row {
			sb.WriteString(k.String())
		}
		out[y] = sb.String()
	}
	return out
}

// DecodeBoard parses the Encode format. Unknown letters become Empty.
func DecodeBoard(rows []string) *Board {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	b := NewBoard(cols, len(rows))
	for y, r := range rows {
		for x := range len(r) {
			if k, ok := ParseKind(r[x : x+1]); ok {
				b.cells[y][x] = k
			}
		}
	}
	return b
}
