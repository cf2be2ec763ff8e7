package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/registry"
	"github.com/vovakirdan/tetris-pwa/internal/replay"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

// PlayOptions configures one terminal game.
type PlayOptions struct {
	Store      *storage.Store
	Player     string
	Source     string // storage.SourceTerminal or storage.SourceSSH
	RecordPath string // empty disables recording
	Logger     *log.Logger
	AllowMenu  bool // b/esc while paused or over returns to the menu
}

// Optional engine capabilities used for recordings and score details.
type (
	ticked interface{ Tick() uint64 }
	timed  interface{ Elapsed() time.Duration }
	tuned  interface{ Config() config.TetrisConfig }
)

// GameModel runs one engine in the terminal. Inputs are applied as they
// arrive and gravity advances on the tick loop, the same split the web
// sessions use, so recordings replay identically.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	opts      PlayOptions
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	gameState core.GameState

	rec        *replay.Recorder
	recordDone bool // one game per recording

	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Source == "" {
		opts.Source = storage.SourceTerminal
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The board is fixed-size; only the canvas follows the window.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey applies one input immediately.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.opts.AllowMenu && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			m.closeRecording()
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.closeRecording()
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}

	if action == core.ActionStart && m.gameState.GameOver {
		m.restart()
	}

	tick := m.tick()
	if m.game.Apply(action) {
		m.record(tick, action)
	}
	m.gameState = m.game.State()
	m.checkGameOver()
	return m, nil
}

// handleTick advances gravity and timers.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	result := m.game.Step(core.InputFrame{})
	m.gameState = result.State
	m.checkGameOver()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a fresh game with a new seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
}

func (m *GameModel) tick() uint64 {
	if t, ok := m.game.(ticked); ok {
		return t.Tick()
	}
	return 0
}

// record appends an applied action, opening the recording on first use.
func (m *GameModel) record(tick uint64, a core.Action) {
	if m.opts.RecordPath == "" || m.recordDone {
		return
	}
	if m.rec == nil {
		h := replay.Header{
			Mode:      m.game.ID(),
			Seed:      m.config.Seed,
			TickRate:  m.config.TickRate,
			Source:    m.opts.Source,
			Player:    m.opts.Player,
			StartedAt: time.Now().UTC(),
		}
		if c, ok := m.game.(tuned); ok {
			h.Config = c.Config()
		}
		rec, err := replay.Create(m.opts.RecordPath, h)
		if err != nil {
			m.opts.Logger.Warn("recording disabled", "path", m.opts.RecordPath, "error", err)
			m.recordDone = true
			return
		}
		m.rec = rec
	}
	if err := m.rec.Input(tick, a.String()); err != nil {
		m.opts.Logger.Warn("record input", "error", err)
	}
}

func (m *GameModel) closeRecording() {
	if m.rec == nil {
		return
	}
	if err := m.rec.Close(); err != nil {
		m.opts.Logger.Warn("close recording", "error", err)
	}
	m.rec = nil
	m.recordDone = true
}

// checkGameOver saves the score and seals the recording, once per game.
func (m *GameModel) checkGameOver() {
	if !m.gameState.GameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	st := m.gameState

	if m.rec != nil {
		if err := m.rec.End(replay.End{Tick: m.tick(), Score: st.Score, Level: st.Level, Lines: st.Lines}); err != nil {
			m.opts.Logger.Warn("record end", "error", err)
		}
		m.closeRecording()
	}

	if m.opts.Store == nil || st.Score == 0 {
		return
	}
	var duration time.Duration
	if t, ok := m.game.(timed); ok {
		duration = t.Elapsed()
	}
	_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
		GameID:   m.game.ID(),
		Player:   m.opts.Player,
		Source:   m.opts.Source,
		Score:    st.Score,
		Level:    st.Level,
		Lines:    st.Lines,
		Duration: duration.Milliseconds(),
	})
	if err != nil {
		m.opts.Logger.Warn("save score", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) error {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		m.closeRecording()
	}
	return err
}
