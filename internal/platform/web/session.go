package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/controls"
	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
	"github.com/vovakirdan/tetris-pwa/internal/protocol"
	"github.com/vovakirdan/tetris-pwa/internal/replay"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

const (
	maxMessageSize = 1024
	readTimeout    = 90 * time.Second
	writeTimeout   = 5 * time.Second
	outBuffer      = 16
)

var errClientGone = errors.New("web: client disconnected")

// SessionConfig is everything a session needs besides its connection.
type SessionConfig struct {
	ID        string
	Mode      tetris.Mode
	Player    string
	TickRate  int
	RecordDir string
	Store     *storage.Store
	Config    func() config.TetrisConfig
	Seed      func() int64
	Logger    *log.Logger
}

// Session is one browser tab playing one engine. The engine is only
// touched under mu: the reader applies inputs, the ticker drives gravity,
// and the writer takes snapshots. Frames are coalesced, so the writer
// always sends the newest state and never queues stale ones.
type Session struct {
	cfg  SessionConfig
	conn *websocket.Conn

	mu       sync.Mutex
	game     *tetris.Game
	seed     int64
	rec      *replay.Recorder
	finished bool

	notify chan struct{}
	out    chan []byte

	closeOnce sync.Once
	quit      chan struct{}
}

// NewSession prepares a session in the Idle phase.
func NewSession(conn *websocket.Conn, cfg SessionConfig) *Session {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Config == nil {
		cfg.Config = config.DefaultTetrisConfig
	}
	if cfg.Seed == nil {
		cfg.Seed = func() int64 { return time.Now().UnixNano() }
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Session{
		cfg:    cfg,
		conn:   conn,
		game:   tetris.NewWithConfig(cfg.Mode, cfg.Config()),
		notify: make(chan struct{}, 1),
		out:    make(chan []byte, outBuffer),
		quit:   make(chan struct{}),
	}
	s.resetLocked()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.cfg.ID
}

// Snapshot returns the current engine state.
func (s *Session) Snapshot() tetris.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Close stops the session. Safe to call multiple times and before Run.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
}

// Run serves the connection until the client leaves or ctx ends.
func (s *Session) Run(ctx context.Context) error {
	defer s.finish()

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       s.cfg.ID,
		Mode:            string(s.cfg.Mode),
		Cols:            s.game.Config().Board.Cols,
		Rows:            s.game.Config().Board.Rows,
		TickRate:        s.cfg.TickRate,
		Palette:         protocol.Palette(),
	}
	if err := s.write(welcome); err != nil {
		return fmt.Errorf("web: welcome: %w", err)
	}
	s.signal()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop() })
	g.Go(func() error { return s.tickLoop(gctx) })
	g.Go(func() error { return s.writeLoop(gctx) })
	g.Go(func() error {
		// Closing the conn is the only way to unblock the reader.
		select {
		case <-gctx.Done():
		case <-s.quit:
		}
		s.conn.Close()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, errClientGone) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) readLoop() error {
	s.conn.SetReadLimit(maxMessageSize)
	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: %v", errClientGone, err)
		}
		s.handleMessage(raw)
	}
}

func (s *Session) tickLoop(ctx context.Context) error {
	t := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if s.step() {
				s.signal()
			}
		}
	}
}

func (s *Session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-s.out:
			if err := s.writeRaw(b); err != nil {
				return err
			}
		case <-s.notify:
			snap := s.Snapshot()
			if err := s.write(protocol.StateFrom(snap)); err != nil {
				return err
			}
		}
	}
}

// handleMessage processes one client frame.
func (s *Session) handleMessage(raw []byte) {
	msg, err := protocol.DecodeClient(raw)
	if err != nil {
		s.send(protocol.NewError(protocol.ErrBadRequest, err.Error()))
		return
	}

	var a core.Action
	switch msg.Type {
	case protocol.TypePing:
		s.send(protocol.PongMsg{Type: protocol.TypePong})
		return
	case protocol.TypeKey:
		a = controls.FromKey(msg.Key)
	case protocol.TypeControl:
		a = controls.FromControl(msg.Control)
	default:
		s.send(protocol.NewError(protocol.ErrUnknownType, msg.Type))
		return
	}

	if a == core.ActionNone {
		s.send(protocol.NewError(protocol.ErrUnknownKey, msg.Key+msg.Control))
		return
	}
	if s.Apply(a) {
		s.signal()
	}
}

// Apply performs one action. Returns true if anything changed.
func (s *Session) Apply(a core.Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a == core.ActionStart && s.game.Phase() == tetris.PhaseGameOver {
		s.resetLocked()
	}

	tick := s.game.Tick()
	if !s.game.Apply(a) {
		return false
	}
	s.recordLocked(tick, a)
	s.checkGameOverLocked()
	return true
}

func (s *Session) step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.game.Step(core.InputFrame{})
	if res.Changed {
		s.checkGameOverLocked()
	}
	return res.Changed
}

// resetLocked starts a fresh game with a new seed and the current config.
func (s *Session) resetLocked() {
	s.closeRecorderLocked()
	s.seed = s.cfg.Seed()
	s.game.SetConfig(s.cfg.Config())
	s.game.Reset(core.RuntimeConfig{TickRate: s.cfg.TickRate, Seed: s.seed})
	s.finished = false
}

func (s *Session) recordLocked(tick uint64, a core.Action) {
	if s.cfg.RecordDir == "" {
		return
	}
	if s.rec == nil {
		path := filepath.Join(s.cfg.RecordDir, replay.FileName(string(s.cfg.Mode), fmt.Sprintf("%s-%d", s.cfg.ID, s.seed)))
		rec, err := replay.Create(path, replay.Header{
			Mode:      string(s.cfg.Mode),
			Seed:      s.seed,
			TickRate:  s.cfg.TickRate,
			Source:    storage.SourceWeb,
			Player:    s.cfg.Player,
			StartedAt: time.Now().UTC(),
			Config:    s.game.Config(),
		})
		if err != nil {
			s.cfg.Logger.Warn("recording disabled", "session", s.cfg.ID, "error", err)
			s.cfg.RecordDir = ""
			return
		}
		s.rec = rec
	}
	if err := s.rec.Input(tick, a.String()); err != nil {
		s.cfg.Logger.Warn("record input", "session", s.cfg.ID, "error", err)
	}
}

// checkGameOverLocked saves the result once per finished game.
func (s *Session) checkGameOverLocked() {
	if s.finished || s.game.Phase() != tetris.PhaseGameOver {
		return
	}
	s.finished = true

	st := s.game.Scores().Stats()
	if s.rec != nil {
		if err := s.rec.End(replay.End{Tick: s.game.Tick(), Score: st.Score, Level: st.Level, Lines: st.Lines}); err != nil {
			s.cfg.Logger.Warn("record end", "session", s.cfg.ID, "error", err)
		}
		s.closeRecorderLocked()
	}

	if s.cfg.Store != nil {
		_, err := s.cfg.Store.SaveScore(storage.ScoreEntry{
			GameID:   string(s.cfg.Mode),
			Player:   s.cfg.Player,
			Source:   storage.SourceWeb,
			Score:    st.Score,
			Level:    st.Level,
			Lines:    st.Lines,
			Duration: s.game.Elapsed().Milliseconds(),
		})
		if err != nil {
			s.cfg.Logger.Warn("save score", "session", s.cfg.ID, "error", err)
		}
	}

	s.cfg.Logger.Info("game over",
		"session", s.cfg.ID,
		"mode", s.cfg.Mode,
		"score", st.Score,
		"level", st.Level,
		"lines", st.Lines,
	)
}

func (s *Session) closeRecorderLocked() {
	if s.rec == nil {
		return
	}
	if err := s.rec.Close(); err != nil {
		s.cfg.Logger.Warn("close recording", "session", s.cfg.ID, "error", err)
	}
	s.rec = nil
}

func (s *Session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeRecorderLocked()
}

// signal wakes the writer. A pending signal already covers this change.
func (s *Session) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// send queues a non-state frame, dropping the oldest when full.
func (s *Session) send(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.cfg.Logger.Error("encode frame", "error", err)
		return
	}
	select {
	case s.out <- b:
		return
	default:
	}
	select {
	case <-s.out:
	default:
	}
	select {
	case s.out <- b:
	default:
	}
}

func (s *Session) write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("web: encode: %w", err)
	}
	return s.writeRaw(b)
}

func (s *Session) writeRaw(b []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("web: write: %w", err)
	}
	return nil
}
