package tetris

import (
	"time"

	"github.com/vovakirdan/tetris-pwa/internal/core"
)

// PieceView is a piece reduced to its kind and cells.
type PieceView struct {
	Kind  Kind
	Cells []core.Point
}

// Snapshot captures the observable state of a game.
// Used by renderers, the wire protocol, replays and determinism tests.
type Snapshot struct {
	Mode     Mode
	Phase    Phase
	Tick     uint64
	Revision uint64
	Stats    Stats
	Overlay  Overlay
	Board    []string
	Active   *PieceView // nil when no piece is falling
	Ghost    []core.Point
	Next     *PieceView // box-relative cells, nil before the first start
	Banner   string
	Pieces   int
	Elapsed  time.Duration
}

// Snapshot returns a deep copy of the observable state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     g.mode,
		Phase:    g.phase,
		Tick:     g.tick,
		Revision: g.revision,
		Stats:    g.scores.Stats(),
		Overlay:  g.Overlay(),
		Board:    g.board.Encode(),
		Banner:   g.banner,
		Pieces:   g.pieces,
		Elapsed:  g.Elapsed(),
	}

	if g.hasActive {
		cells := g.active.Cells()
		snap.Active = &PieceView{Kind: g.active.Kind, Cells: cells[:]}

		ghost := g.active.Moved(0, g.board.DropDistance(g.active)).Cells()
		snap.Ghost = ghost[:]
	}

	if g.next != Empty {
		snap.Next = previewOf(g.next)
	}
	return snap
}

// previewOf returns the spawn orientation shifted so its bounding cells start at 0,0.
func previewOf(k Kind) *PieceView {
	cells := shapeTable[k][Rot0]
	minX, minY := 4, 4
	for _, c := range cells {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	out := make([]core.Point, len(cells))
	for i, c := range cells {
		out[i] = core.Point{X: c.X - minX, Y: c.Y - minY}
	}
	return &PieceView{Kind: k, Cells: out}
}
