// Package tetris implements the falling-block engine: SRS rotation, a
// single-writer scoreboard, and the idle/running/paused/game-over phase
// machine. It has no I/O; front-ends feed it actions and render snapshots.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/registry"
)

// Mode selects the win condition.
type Mode string

const (
	ModeMarathon Mode = "tetris"
	ModeSprint   Mode = "tetris_sprint"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path used by registry-created games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset used by registry-created games.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register(string(ModeMarathon), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeSprint), func() registry.Game {
		return NewSprint()
	})
}

// Game is one Tetris engine instance. It is not safe for concurrent use.
type Game struct {
	mode    Mode
	fixed   *config.TetrisConfig // set by NewWithConfig; otherwise loaded on Reset
	cfg     config.TetrisConfig
	curve   *config.LevelCurve
	runtime core.RuntimeConfig

	rng        *rand.Rand
	randomizer Randomizer

	board     *Board
	active    Piece
	hasActive bool
	next      Kind
	scores    *ScoreBoard

	phase   Phase
	cleared bool // sprint goal reached

	tick        uint64
	runTicks    uint64 // ticks spent running, drives the sprint clock
	gravityTick int
	revision    uint64
	pieces      int

	banner      string
	bannerTicks int

	panel *StatsPanel
	bar   *StatsBar
}

// New creates a marathon game using the CLI-selected config.
func New() *Game {
	return newGame(ModeMarathon, nil)
}

// NewSprint creates a sprint game using the CLI-selected config.
func NewSprint() *Game {
	return newGame(ModeSprint, nil)
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(mode Mode, cfg config.TetrisConfig) *Game {
	return newGame(mode, &cfg)
}

func newGame(mode Mode, cfg *config.TetrisConfig) *Game {
	g := &Game{mode: mode, fixed: cfg}
	if cfg != nil {
		g.cfg = *cfg
	} else {
		g.cfg = config.DefaultTetrisConfig()
	}
	g.curve = config.NewLevelCurve(g.cfg)
	g.runtime = core.DefaultConfig()
	g.rng = rand.New(rand.NewSource(g.runtime.Seed))
	g.randomizer = NewRandomizer(g.cfg.Randomizer, g.rng)
	g.scores = NewScoreBoard(g.curve)
	g.panel = &StatsPanel{}
	g.bar = &StatsBar{}
	g.scores.Subscribe(g.panel)
	g.scores.Subscribe(g.bar)
	g.board = NewBoard(g.cfg.Board.Cols, g.cfg.Board.Rows)
	return g
}

func (g *Game) loadConfig() {
	if g.fixed != nil {
		g.cfg = *g.fixed
	} else {
		cfg, err := config.LoadTetris(configPath)
		if err != nil {
			cfg = config.DefaultTetrisConfig()
		}
		if difficultyPreset != "" {
			config.ApplyTetrisPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	g.curve = config.NewLevelCurve(g.cfg)
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Tetris (Sprint 40)"
	}
	return "Tetris"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Config returns the engine config in effect.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// SetConfig pins the engine config used from the next Reset on.
func (g *Game) SetConfig(cfg config.TetrisConfig) {
	g.fixed = &cfg
}

// Reset returns the game to Idle with an empty board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	g.runtime = cfg
	g.loadConfig()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.randomizer = NewRandomizer(g.cfg.Randomizer, g.rng)
	g.board = NewBoard(g.cfg.Board.Cols, g.cfg.Board.Rows)
	g.hasActive = false
	g.next = Empty
	g.phase = PhaseIdle
	g.cleared = false
	g.tick = 0
	g.runTicks = 0
	g.gravityTick = 0
	g.pieces = 0
	g.banner = ""
	g.bannerTicks = 0
	g.scores.reset(g.curve)
	g.revision++
}

// Scores exposes the scoreboard for subscription.
func (g *Game) Scores() *ScoreBoard {
	return g.scores
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Tick returns the number of simulation ticks since Reset.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Revision increases whenever anything observable changes.
func (g *Game) Revision() uint64 {
	return g.revision
}

// Overlay returns the modal derived from the current phase.
func (g *Game) Overlay() Overlay {
	return overlayFor(g.phase, g.scores.Stats(), g.cleared, g.Elapsed())
}

// Elapsed returns the time spent running, at the configured tick rate.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.runTicks) * time.Second / time.Duration(g.runtime.TickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.scores.Stats()
	return core.GameState{
		Score:    st.Score,
		Level:    st.Level,
		Lines:    st.Lines,
		Started:  g.phase != PhaseIdle,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
	}
}

// Apply performs one action immediately. Actions that cannot be applied
// in the current phase or position are absorbed and return false.
func (g *Game) Apply(a core.Action) bool {
	changed := g.apply(a)
	if changed {
		g.revision++
	}
	return changed
}

func (g *Game) apply(a core.Action) bool {
	switch a {
	case core.ActionStart:
		switch g.phase {
		case PhaseIdle, PhaseGameOver:
			g.start()
			return true
		case PhasePaused:
			g.phase = PhaseRunning
			return true
		}
		return false

	case core.ActionTogglePause:
		switch g.phase {
		case PhaseRunning:
			g.phase = PhasePaused
			return true
		case PhasePaused:
			g.phase = PhaseRunning
			return true
		}
		return false
	}

	if g.phase != PhaseRunning || !g.hasActive {
		return false
	}

	switch a {
	case core.ActionMoveLeft:
		return g.tryMove(-1, 0)
	case core.ActionMoveRight:
		return g.tryMove(1, 0)
	case core.ActionRotate:
		return g.tryRotate(true)
	case core.ActionRotateCCW:
		return g.tryRotate(false)
	case core.ActionSoftDrop:
		g.scores.addSoftDrop()
		if !g.tryMove(0, 1) {
			g.lock()
		}
		return true
	case core.ActionHardDrop:
		d := g.board.DropDistance(g.active)
		g.active = g.active.Moved(0, d)
		g.scores.addHardDrop(d)
		g.lock()
		return true
	}
	return false
}

// Step applies the frame's actions in canonical order, then advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	changed := false
	for _, a := range in.Ordered() {
		if g.Apply(a) {
			changed = true
		}
	}
	if g.advance() {
		g.revision++
		changed = true
	}
	return core.StepResult{State: g.State(), Changed: changed}
}

// advance runs one tick of timers and gravity.
func (g *Game) advance() bool {
	g.tick++
	changed := false

	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
			changed = true
		}
	}

	if g.phase != PhaseRunning || !g.hasActive {
		return changed
	}

	g.runTicks++
	g.gravityTick++
	if g.gravityTick < g.curve.GravityTicks(g.scores.Stats().Level, g.runtime.TickRate) {
		return changed
	}
	g.gravityTick = 0
	if !g.tryMove(0, 1) {
		g.lock()
	}
	return true
}

func (g *Game) start() {
	g.board = NewBoard(g.cfg.Board.Cols, g.cfg.Board.Rows)
	g.scores.reset(g.curve)
	g.cleared = false
	g.runTicks = 0
	g.gravityTick = 0
	g.pieces = 0
	g.banner = ""
	g.bannerTicks = 0
	g.phase = PhaseRunning
	g.next = g.randomizer.Next()
	g.spawn()
}

// spawn promotes the preview piece. A blocked spawn ends the game.
func (g *Game) spawn() {
	p := spawnPiece(g.next, g.board.Cols())
	g.next = g.randomizer.Next()
	g.gravityTick = 0
	if !g.board.Fits(p.Cells()) {
		g.hasActive = false
		g.phase = PhaseGameOver
		return
	}
	g.active = p
	g.hasActive = true
}

func (g *Game) tryMove(dx, dy int) bool {
	moved := g.active.Moved(dx, dy)
	if !g.board.Fits(moved.Cells()) {
		return false
	}
	g.active = moved
	return true
}

func (g *Game) tryRotate(clockwise bool) bool {
	if g.active.Kind == O {
		return false
	}
	rotated := g.active
	if clockwise {
		rotated.Rot = rotated.Rot.cw()
	} else {
		rotated.Rot = rotated.Rot.ccw()
	}
	for _, k := range kicks(g.active, clockwise) {
		candidate := rotated.Moved(k.X, k.Y)
		if g.board.Fits(candidate.Cells()) {
			g.active = candidate
			return true
		}
	}
	return false
}

// lock fixes the active piece, scores cleared rows, and spawns the next piece.
func (g *Game) lock() {
	g.board.Lock(g.active)
	g.hasActive = false
	g.pieces++

	if n := g.board.ClearFull(); n > 0 {
		g.scores.addLines(n)
		g.banner = clearLabel(n)
		g.bannerTicks = max(1, g.cfg.Effects.ClearBannerMS*g.runtime.TickRate/1000)
	}

	if g.mode == ModeSprint && g.scores.Stats().Lines >= g.cfg.Sprint.TargetLines {
		g.cleared = true
		g.phase = PhaseGameOver
		return
	}
	g.spawn()
}

func clearLabel(n int) string {
	switch n {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	default:
		return "TETRIS!"
	}
}
