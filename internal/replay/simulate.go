package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
)

var ErrMismatch = errors.New("replay: result mismatch")

// Result is the outcome of a re-simulation.
type Result struct {
	Snapshot tetris.Snapshot
	Inputs   int
	Rejected int // unknown action names
}

// Stats returns the final scoreboard values.
func (r Result) Stats() tetris.Stats {
	return r.Snapshot.Stats
}

// Simulate replays rec on a fresh engine. Inputs recorded at tick t are
// applied in file order before tick t advances. When rec has an End the
// simulation stops there and the final stats are compared; a difference
// returns ErrMismatch along with the result.
func Simulate(rec *Recording) (Result, error) {
	var res Result
	if rec == nil {
		return res, ErrNoHeader
	}

	g := tetris.NewWithConfig(tetris.Mode(rec.Header.Mode), rec.Header.Config)
	rt := core.DefaultConfig()
	rt.Seed = rec.Header.Seed
	if rec.Header.TickRate > 0 {
		rt.TickRate = rec.Header.TickRate
	}
	g.Reset(rt)

	last := uint64(0)
	if n := len(rec.Inputs); n > 0 {
		last = rec.Inputs[n-1].Tick
	}
	if rec.End != nil {
		last = max(last, rec.End.Tick)
	}

	i := 0
	for {
		for i < len(rec.Inputs) && rec.Inputs[i].Tick <= g.Tick() {
			a, ok := core.ParseAction(rec.Inputs[i].Action)
			if ok {
				g.Apply(a)
				res.Inputs++
			} else {
				res.Rejected++
			}
			i++
		}
		if g.Tick() >= last {
			break
		}
		g.Step(core.InputFrame{})
	}

	res.Snapshot = g.Snapshot()
	if rec.End != nil {
		got := res.Snapshot.Stats
		want := tetris.Stats{Score: rec.End.Score, Level: rec.End.Level, Lines: rec.End.Lines}
		if got != want {
			return res, fmt.Errorf("%w: got %+v, recorded %+v", ErrMismatch, got, want)
		}
	}
	return res, nil
}
