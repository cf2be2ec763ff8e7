package protocol

import (
	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
)

// StateFrom converts an engine snapshot into a state frame.
func StateFrom(s tetris.Snapshot) StateMsg {
	msg := StateMsg{
		Type:     TypeState,
		Revision: s.Revision,
		Tick:     s.Tick,
		Phase:    s.Phase.String(),
		Overlay: OverlayMsg{
			Visible: s.Overlay.Visible,
			Title:   s.Overlay.Title,
			Message: s.Overlay.Message,
			Button:  s.Overlay.Button,
		},
		Stats: StatsMsg{
			Score: s.Stats.Score,
			Level: s.Stats.Level,
			Lines: s.Stats.Lines,
		},
		Board:     s.Board,
		Ghost:     points(s.Ghost),
		Banner:    s.Banner,
		ElapsedMS: s.Elapsed.Milliseconds(),
	}
	if s.Active != nil {
		msg.Piece = pieceMsg(s.Active)
	}
	if s.Next != nil {
		msg.Next = pieceMsg(s.Next)
	}
	return msg
}

// Palette maps piece letters to web colors.
func Palette() map[string]string {
	out := make(map[string]string, len(tetris.Kinds))
	for _, k := range tetris.Kinds {
		out[k.String()] = k.Hex()
	}
	return out
}

func pieceMsg(p *tetris.PieceView) *PieceMsg {
	return &PieceMsg{Kind: p.Kind.String(), Cells: points(p.Cells)}
}

func points(ps []core.Point) [][2]int {
	out := make([][2]int, len(ps))
	for i, p := range ps {
		out[i] = [2]int{p.X, p.Y}
	}
	return out
}
