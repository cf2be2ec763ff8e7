package tetris

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/core"
)

func TestSpawnPositions(t *testing.T) {
	tests := []struct {
		kind Kind
		x    int
	}{
		{I, 3},
		{O, 4},
		{T, 3},
		{L, 3},
	}
	for _, tt := range tests {
		p := spawnPiece(tt.kind, 10)
		if p.Pos.X != tt.x {
			t.Errorf("%v spawn x = %d, expected %d", tt.kind, p.Pos.X, tt.x)
		}
		top := 99
		for _, c := range p.Cells() {
			top = min(top, c.Y)
		}
		if top != 0 {
			t.Errorf("%v top row = %d, expected 0", tt.kind, top)
		}
	}
}

func TestRotationCycles(t *testing.T) {
	for _, k := range Kinds {
		p := Piece{Kind: k}
		for range 4 {
			p.Rot = p.Rot.cw()
		}
		if p.Rot != Rot0 {
			t.Errorf("%v: four clockwise turns should return to spawn", k)
		}
	}

	// T points right after one clockwise turn
	want := [4]core.Point{{X: 2, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}
	if shapeTable[T][RotR] != want {
		t.Errorf("T right = %v, expected %v", shapeTable[T][RotR], want)
	}
}

func TestRotateOIsAbsorbed(t *testing.T) {
	g := started(t)
	g.active = spawnPiece(O, g.board.Cols())
	if g.Apply(core.ActionRotate) {
		t.Error("O rotation should report no change")
	}
}

func TestWallKickOffRightWall(t *testing.T) {
	g := started(t)
	g.active = Piece{Kind: I, Rot: RotR, Pos: core.Point{X: 7, Y: 5}}

	if !g.Apply(core.ActionRotate) {
		t.Fatal("I should kick off the right wall")
	}
	if g.active.Rot != Rot2 || g.active.Pos.X != 6 {
		t.Errorf("after kick: rot=%d pos=%+v, expected rot 2 at x 6", g.active.Rot, g.active.Pos)
	}
	if !g.board.Fits(g.active.Cells()) {
		t.Error("kicked piece must fit")
	}
}

func TestRotationBlockedEverywhereIsAbsorbed(t *testing.T) {
	g := started(t)
	g.active = Piece{Kind: T, Rot: Rot0, Pos: core.Point{X: 3, Y: 10}}
	// box the T in so no kick fits
	for y := 6; y < g.board.Rows(); y++ {
		for x := range g.board.Cols() {
			g.board.Set(x, y, L)
		}
	}
	for _, c := range g.active.Cells() {
		g.board.Set(c.X, c.Y, Empty)
	}
	before := g.active

	if g.Apply(core.ActionRotate) {
		t.Error("boxed-in rotation should be absorbed")
	}
	if g.active != before {
		t.Error("absorbed rotation must not move the piece")
	}
}

func TestKindColors(t *testing.T) {
	for _, k := range Kinds {
		if k.Hex() == "" || k.Color() == core.ColorDefault {
			t.Errorf("%v has no color", k)
		}
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v", k.String(), got)
		}
	}
	if Empty.String() != "." {
		t.Errorf("Empty should encode as '.'")
	}
}

func TestBagRandomizerDealsEveryKind(t *testing.T) {
	r := NewRandomizer(config.RandomizerBag, rand.New(rand.NewSource(5)))
	for bag := range 10 {
		seen := map[Kind]bool{}
		for range 7 {
			seen[r.Next()] = true
		}
		if len(seen) != 7 {
			t.Errorf("bag %d dealt %d distinct kinds, expected 7", bag, len(seen))
		}
	}
}

func TestUniformRandomizerStaysInRange(t *testing.T) {
	r := NewRandomizer(config.RandomizerUniform, rand.New(rand.NewSource(5)))
	for range 500 {
		if k := r.Next(); k < I || k > L {
			t.Fatalf("unexpected kind %v", k)
		}
	}
}
