package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/core"
)

func newTestGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g
}

func started(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, ModeMarathon)
	if !g.Apply(core.ActionStart) {
		t.Fatal("start should change state")
	}
	return g
}

func TestInitialStateIsIdle(t *testing.T) {
	g := newTestGame(t, ModeMarathon)

	if g.Phase() != PhaseIdle {
		t.Fatalf("Phase = %v, expected idle", g.Phase())
	}
	ov := g.Overlay()
	if !ov.Visible || ov.Button != ButtonStart {
		t.Errorf("idle overlay = %+v, expected visible START", ov)
	}
	if got := g.Scores().Stats(); got != (Stats{Score: 0, Level: 1, Lines: 0}) {
		t.Errorf("idle stats = %+v, expected 0/1/0", got)
	}
	if g.State().Started {
		t.Error("idle game should not report Started")
	}
}

func TestStartHidesOverlay(t *testing.T) {
	g := started(t)

	if g.Phase() != PhaseRunning {
		t.Fatalf("Phase = %v, expected running", g.Phase())
	}
	if g.Overlay().Visible {
		t.Error("overlay should be hidden while running")
	}
	if g.Snapshot().Active == nil {
		t.Error("a piece should be falling after start")
	}

	rev := g.Revision()
	if g.Apply(core.ActionStart) {
		t.Error("start while running should be a no-op")
	}
	if g.Revision() != rev {
		t.Error("no-op start must not bump revision")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, ModeMarathon)

	if g.Apply(core.ActionTogglePause) {
		t.Error("pause while idle should be absorbed")
	}

	g.Apply(core.ActionStart)
	g.Apply(core.ActionTogglePause)

	ov := g.Overlay()
	if g.Phase() != PhasePaused || !ov.Visible || ov.Title != TitlePaused || ov.Button != ButtonResume {
		t.Fatalf("after pause: phase=%v overlay=%+v", g.Phase(), ov)
	}

	g.Apply(core.ActionTogglePause)
	if g.Phase() != PhaseRunning || g.Overlay().Visible {
		t.Errorf("second pause should resume, phase=%v", g.Phase())
	}

	g.Apply(core.ActionTogglePause)
	g.Apply(core.ActionStart)
	if g.Phase() != PhaseRunning {
		t.Errorf("start while paused should resume, phase=%v", g.Phase())
	}
}

func TestPausedIgnoresGameplayAndGravity(t *testing.T) {
	g := started(t)
	g.Apply(core.ActionTogglePause)
	before := g.Snapshot()

	for _, a := range []core.Action{core.ActionSoftDrop, core.ActionHardDrop, core.ActionMoveLeft, core.ActionRotate} {
		if g.Apply(a) {
			t.Errorf("%v should be absorbed while paused", a)
		}
	}
	for range 300 {
		g.Step(core.NewInputFrame())
	}

	after := g.Snapshot()
	if diff := cmp.Diff(before.Board, after.Board); diff != "" {
		t.Errorf("board changed while paused:\n%s", diff)
	}
	if diff := cmp.Diff(before.Active, after.Active); diff != "" {
		t.Errorf("piece moved while paused:\n%s", diff)
	}
	if before.Stats != after.Stats {
		t.Errorf("stats changed while paused: %+v -> %+v", before.Stats, after.Stats)
	}
}

func TestSoftDropScores(t *testing.T) {
	g := started(t)
	y := g.active.Pos.Y

	g.Apply(core.ActionSoftDrop)

	if got := g.Scores().Stats().Score; got != 1 {
		t.Errorf("score after soft drop = %d, expected 1", got)
	}
	if g.active.Pos.Y != y+1 {
		t.Errorf("piece y = %d, expected %d", g.active.Pos.Y, y+1)
	}
}

func TestSoftDropOnFloorLocksAndScores(t *testing.T) {
	g := started(t)
	d := g.board.DropDistance(g.active)
	g.active = g.active.Moved(0, d)
	kind := g.active.Kind
	cells := g.active.Cells()

	g.Apply(core.ActionSoftDrop)

	if g.Scores().Stats().Score != 1 {
		t.Errorf("soft drop on the floor still awards a point")
	}
	for _, c := range cells {
		if g.board.At(c.X, c.Y) != kind {
			t.Errorf("cell %+v should be locked as %v", c, kind)
		}
	}
	if g.pieces != 1 {
		t.Errorf("pieces = %d, expected 1", g.pieces)
	}
}

func TestHardDropBeatsSoftDrop(t *testing.T) {
	g := started(t)
	d := g.board.DropDistance(g.active)

	g.Apply(core.ActionHardDrop)

	got := g.Scores().Stats().Score
	if got != 2*d {
		t.Errorf("hard drop score = %d, expected %d", got, 2*d)
	}
	if got <= 1 {
		t.Errorf("hard drop must award more than one soft drop step, got %d", got)
	}
}

func TestHardDropOnFloorStillBeatsSoftDrop(t *testing.T) {
	g := started(t)
	g.active = g.active.Moved(0, g.board.DropDistance(g.active))

	g.Apply(core.ActionHardDrop)

	if got := g.Scores().Stats().Score; got != 2 {
		t.Errorf("zero-distance hard drop = %d, expected the minimum 2", got)
	}
}

func TestBlockedMovesAreAbsorbed(t *testing.T) {
	g := started(t)

	for range 20 {
		g.Apply(core.ActionMoveLeft)
	}
	minX := g.board.Cols()
	for _, c := range g.active.Cells() {
		minX = min(minX, c.X)
	}
	if minX != 0 {
		t.Errorf("piece should rest against the left wall, min x = %d", minX)
	}
	if g.Apply(core.ActionMoveLeft) {
		t.Error("move into the wall should report no change")
	}
	if got := g.Scores().Stats().Score; got != 0 {
		t.Errorf("lateral moves must not score, got %d", got)
	}
}

func TestIdleInputsAreAbsorbed(t *testing.T) {
	g := newTestGame(t, ModeMarathon)
	for _, a := range []core.Action{core.ActionMoveLeft, core.ActionMoveRight, core.ActionRotate, core.ActionSoftDrop, core.ActionHardDrop, core.ActionQuit} {
		if g.Apply(a) {
			t.Errorf("%v should be absorbed while idle", a)
		}
	}
	if g.Scores().Stats().Score != 0 {
		t.Error("idle inputs must not score")
	}
}

func TestRandomInputsNeverBreakInvariants(t *testing.T) {
	g := started(t)
	rng := rand.New(rand.NewSource(99))
	actions := []core.Action{
		core.ActionMoveLeft, core.ActionMoveRight, core.ActionRotate,
		core.ActionRotateCCW, core.ActionSoftDrop, core.ActionHardDrop,
	}

	for i := range 5000 {
		if g.Phase() == PhaseGameOver {
			g.Apply(core.ActionStart)
		}
		prev := g.Scores().Stats()
		a := actions[rng.Intn(len(actions))]
		g.Apply(a)
		g.Step(core.NewInputFrame())

		st := g.Scores().Stats()
		if st.Score < prev.Score && g.Phase() == PhaseRunning && prev.Score != 0 {
			// only a restart may lower the score
			t.Fatalf("step %d: score decreased %d -> %d", i, prev.Score, st.Score)
		}
		if st.Level < 1 || st.Lines < 0 {
			t.Fatalf("step %d: invalid stats %+v", i, st)
		}
		if g.hasActive && !g.board.Fits(g.active.Cells()) {
			t.Fatalf("step %d: active piece overlaps the board", i)
		}
		panel, bar := g.Surfaces()
		if panel.stats != st || bar.stats != st {
			t.Fatalf("step %d: surfaces diverged: panel=%+v bar=%+v model=%+v", i, panel.stats, bar.stats, st)
		}
	}
}

func TestSingleLineClear(t *testing.T) {
	g := started(t)
	bottom := g.board.Rows() - 1
	for x := range g.board.Cols() {
		if x < 3 || x > 6 {
			g.board.Set(x, bottom, J)
		}
	}
	g.active = spawnPiece(I, g.board.Cols())
	d := g.board.DropDistance(g.active)

	g.Apply(core.ActionHardDrop)

	st := g.Scores().Stats()
	if st.Lines != 1 {
		t.Fatalf("lines = %d, expected 1", st.Lines)
	}
	if want := 2*d + 100; st.Score != want {
		t.Errorf("score = %d, expected %d", st.Score, want)
	}
	for x := range g.board.Cols() {
		if g.board.At(x, bottom) != Empty {
			t.Errorf("bottom row should be empty after clear, x=%d holds %v", x, g.board.At(x, bottom))
		}
	}
	if g.banner != "SINGLE" {
		t.Errorf("banner = %q, expected SINGLE", g.banner)
	}
}

func TestTetrisClearAndBannerExpires(t *testing.T) {
	g := started(t)
	rows := g.board.Rows()
	for y := rows - 4; y < rows; y++ {
		for x := 1; x < g.board.Cols(); x++ {
			g.board.Set(x, y, Z)
		}
	}
	// vertical I in the left well
	g.active = Piece{Kind: I, Rot: RotR, Pos: core.Point{X: -2, Y: 0}}
	d := g.board.DropDistance(g.active)

	g.Apply(core.ActionHardDrop)

	st := g.Scores().Stats()
	if st.Lines != 4 || st.Score != 2*d+800 {
		t.Errorf("stats = %+v, expected 4 lines and %d points", st, 2*d+800)
	}
	if g.banner != "TETRIS!" {
		t.Errorf("banner = %q, expected TETRIS!", g.banner)
	}

	// 360ms at 60 ticks/s
	for range 22 {
		g.Step(core.NewInputFrame())
	}
	if g.banner != "" {
		t.Errorf("banner should expire, still %q", g.banner)
	}
}

func TestLevelProgression(t *testing.T) {
	g := started(t)
	g.scores.addLines(9)
	if g.Scores().Stats().Level != 1 {
		t.Fatalf("level after 9 lines = %d, expected 1", g.Scores().Stats().Level)
	}

	g.scores.addLines(1)
	st := g.Scores().Stats()
	if st.Level != 2 {
		t.Errorf("level after 10 lines = %d, expected 2", st.Level)
	}

	before := st.Score
	g.scores.addLines(2)
	if got := g.Scores().Stats().Score - before; got != 600 {
		t.Errorf("double at level 2 = %d, expected 600", got)
	}
}

func TestGravity(t *testing.T) {
	g := started(t)
	y := g.active.Pos.Y

	for range 29 {
		g.Step(core.NewInputFrame())
	}
	if g.active.Pos.Y != y {
		t.Fatalf("piece fell early, y = %d", g.active.Pos.Y)
	}

	res := g.Step(core.NewInputFrame())
	if g.active.Pos.Y != y+1 {
		t.Errorf("piece should fall after 30 ticks at level 1, y = %d", g.active.Pos.Y)
	}
	if !res.Changed {
		t.Error("gravity step should report a change")
	}
	if g.Scores().Stats().Score != 0 {
		t.Error("gravity must not score")
	}
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	g := started(t)
	for y := range 2 {
		for x := 3; x <= 6; x++ {
			g.board.Set(x, y, S)
		}
	}
	// the soft drop collides with the stack, locks, and the next spawn is blocked
	g.Apply(core.ActionSoftDrop)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("Phase = %v, expected gameover", g.Phase())
	}
	ov := g.Overlay()
	if ov.Title != TitleGameOver || ov.Button != ButtonRestart || ov.Message != "Score: 1" {
		t.Errorf("game over overlay = %+v", ov)
	}
	if !g.State().GameOver {
		t.Error("State should report GameOver")
	}

	g.Apply(core.ActionStart)
	if g.Phase() != PhaseRunning || g.Scores().Stats() != (Stats{Level: 1}) {
		t.Errorf("restart should reset stats, got %v %+v", g.Phase(), g.Scores().Stats())
	}
}

func TestSprintClears(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Sprint.TargetLines = 1
	g := NewWithConfig(ModeSprint, cfg)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})
	g.Apply(core.ActionStart)

	bottom := g.board.Rows() - 1
	for x := 4; x < g.board.Cols(); x++ {
		g.board.Set(x, bottom, T)
	}
	for x := range 4 {
		g.board.Set(x, bottom, Empty)
	}
	g.active = Piece{Kind: I, Rot: Rot0, Pos: core.Point{X: 0, Y: -1}}
	g.runTicks = 90 // 1.5s at 60 ticks per second
	g.Apply(core.ActionHardDrop)

	if g.Phase() != PhaseGameOver {
		t.Fatalf("Phase = %v, expected sprint to finish", g.Phase())
	}
	ov := g.Overlay()
	if ov.Title != TitleCleared || ov.Button != ButtonRestart || ov.Message != "Time: 0:01.50" {
		t.Errorf("sprint overlay = %+v", ov)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00.00"},
		{1500 * time.Millisecond, "0:01.50"},
		{61*time.Second + 70*time.Millisecond, "1:01.07"},
		{10 * time.Minute, "10:00.00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := NewWithConfig(ModeMarathon, config.DefaultTetrisConfig())
		g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 12345})
		rng := rand.New(rand.NewSource(1))
		frame := core.NewInputFrame()
		for i := range 3000 {
			frame.Clear()
			if i == 0 {
				frame.Set(core.ActionStart)
			}
			if i%7 == 0 {
				frame.Set(core.GameplayActions[2+rng.Intn(len(core.GameplayActions)-2)])
			}
			g.Step(frame)
		}
		return g.Snapshot()
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed and inputs diverged (-first +second):\n%s", diff)
	}
}

func TestRevisionTracksChanges(t *testing.T) {
	g := started(t)
	rev := g.Revision()

	for range 20 {
		g.Apply(core.ActionMoveLeft)
	}
	mid := g.Revision()
	if mid == rev {
		t.Fatal("moves should bump revision")
	}
	g.Apply(core.ActionMoveLeft)
	if g.Revision() != mid {
		t.Error("absorbed move must not bump revision")
	}
}
