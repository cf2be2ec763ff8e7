package tetris

import "github.com/vovakirdan/tetris-pwa/internal/core"

// Kind identifies a tetromino. Empty marks a vacant board cell.
type Kind uint8

const (
	Empty Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every tetromino in bag order.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

// String returns the single-letter name, or "." for Empty.
func (k Kind) String() string {
	if k > L {
		return "?"
	}
	return string(".IOTSZJL"[k])
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k := Empty; k <= L; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return Empty, false
}

// Hex returns the web color of the piece.
func (k Kind) Hex() string {
	switch k {
	case I:
		return "#00d4ff"
	case O:
		return "#ffd700"
	case T:
		return "#b44dff"
	case S:
		return "#00ff88"
	case Z:
		return "#ff4d6a"
	case J:
		return "#4d8bff"
	case L:
		return "#ff8c00"
	default:
		return ""
	}
}

// Color returns the terminal color of the piece.
func (k Kind) Color() core.Color {
	switch k {
	case I:
		return core.ColorBrightCyan
	case O:
		return core.ColorBrightYellow
	case T:
		return core.ColorPurple
	case S:
		return core.ColorBrightGreen
	case Z:
		return core.ColorBrightRed
	case J:
		return core.ColorBrightBlue
	case L:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Rotation is an SRS orientation: spawn, right, two, left.
type Rotation uint8

const (
	Rot0 Rotation = iota
	RotR
	Rot2
	RotL
)

func (r Rotation) cw() Rotation  { return (r + 1) % 4 }
func (r Rotation) ccw() Rotation { return (r + 3) % 4 }

// spawn orientations inside their bounding box, y down.
var spawnShapes = map[Kind]struct {
	size  int
	cells [4]core.Point
}{
	I: {4, [4]core.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}},
	O: {2, [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}},
	T: {3, [4]core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
	S: {3, [4]core.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}},
	Z: {3, [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
	J: {3, [4]core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
	L: {3, [4]core.Point{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}},
}

// shapeTable[kind][rotation] holds box-relative cells for every orientation.
var shapeTable = buildShapeTable()

func buildShapeTable() [L + 1][4][4]core.Point {
	var table [L + 1][4][4]core.Point
	for _, k := range Kinds {
		def := spawnShapes[k]
		cells := def.cells
		for r := Rot0; r <= RotL; r++ {
			table[k][r] = cells
			if k == O {
				continue
			}
			// clockwise quarter turn inside an n*n box
			for i, c := range cells {
				cells[i] = core.Point{X: def.size - 1 - c.Y, Y: c.X}
			}
		}
	}
	return table
}

// boxSize returns the bounding box edge for a kind.
func boxSize(k Kind) int {
	return spawnShapes[k].size
}

// Piece is the falling tetromino.
type Piece struct {
	Kind Kind
	Rot  Rotation
	Pos  core.Point // top-left of the bounding box
}

// Cells returns the absolute board cells covered by the piece.
func (p Piece) Cells() [4]core.Point {
	var out [4]core.Point
	for i, c := range shapeTable[p.Kind][p.Rot] {
		out[i] = c.Add(p.Pos)
	}
	return out
}

// Moved returns a copy shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Pos = p.Pos.Add(core.Point{X: dx, Y: dy})
	return p
}

// spawnPiece places kind centered horizontally with its top row at y=0.
func spawnPiece(k Kind, cols int) Piece {
	top := 4
	for _, c := range shapeTable[k][Rot0] {
		top = min(top, c.Y)
	}
	return Piece{
		Kind: k,
		Rot:  Rot0,
		Pos:  core.Point{X: (cols - boxSize(k)) / 2, Y: -top},
	}
}

// SRS wall kicks, y down. Indexed by the starting rotation; the second
// index selects clockwise (0) or counter-clockwise (1).
var jlstzKicks = [4][2][5]core.Point{
	Rot0: {
		{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}}, // 0->R
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},    // 0->L
	},
	RotR: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}}, // R->2
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}}, // R->0
	},
	Rot2: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},    // 2->L
		{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}}, // 2->R
	},
	RotL: {
		{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}}, // L->0
		{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}}, // L->2
	},
}

var iKicks = [4][2][5]core.Point{
	Rot0: {
		{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 1}, {X: 1, Y: -2}}, // 0->R
		{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: -2}, {X: 2, Y: 1}}, // 0->L
	},
	RotR: {
		{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: -2}, {X: 2, Y: 1}}, // R->2
		{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: -1}, {X: -1, Y: 2}}, // R->0
	},
	Rot2: {
		{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: -1}, {X: -1, Y: 2}}, // 2->L
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 2}, {X: -2, Y: -1}}, // 2->R
	},
	RotL: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 2}, {X: -2, Y: -1}}, // L->0
		{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 1}, {X: 1, Y: -2}}, // L->2
	},
}

// kicks returns the offsets to try when rotating p in the given direction.
func kicks(p Piece, clockwise bool) [5]core.Point {
	dir := 1
	if clockwise {
		dir = 0
	}
	if p.Kind == I {
		return iKicks[p.Rot][dir]
	}
	return jlstzKicks[p.Rot][dir]
}
