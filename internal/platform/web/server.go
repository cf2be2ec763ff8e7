// Package web serves the installable browser client: the app shell, its
// manifest and icons, and one WebSocket session per tab. Every game runs
// on the server; the page only draws state frames and forwards inputs.
package web

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
	"github.com/vovakirdan/tetris-pwa/internal/sfx"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

const maxPlayerName = 24

// ConfigSource supplies the engine config for newly started games.
// *config.Watcher satisfies it.
type ConfigSource interface {
	Current() config.TetrisConfig
}

// StaticConfig is a ConfigSource that never changes.
type StaticConfig config.TetrisConfig

// Current returns the fixed config.
func (c StaticConfig) Current() config.TetrisConfig {
	return config.TetrisConfig(c)
}

// Options configures the web server.
type Options struct {
	Addr      string
	TickRate  int
	RecordDir string // empty disables recordings
	PublicURL string // advertised in /qr.png; derived from the request when empty
	Store     *storage.Store
	Config    ConfigSource
	Logger    *log.Logger
	Seed      func() int64
}

// Server is the PWA HTTP server.
type Server struct {
	opts     Options
	logger   *log.Logger
	assets   *assets
	sounds   *sfx.Bank
	sessions *SessionRegistry
	upgrader websocket.Upgrader
	http     *http.Server

	baseCtx    context.Context
	cancelBase context.CancelFunc

	mu      sync.Mutex // guards closing and wg.Add
	closing bool
	wg      sync.WaitGroup
}

// NewServer renders the static assets and prepares the routes.
func NewServer(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Config == nil {
		opts.Config = StaticConfig(config.DefaultTetrisConfig())
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Seed == nil {
		var mu sync.Mutex
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		opts.Seed = func() int64 {
			mu.Lock()
			defer mu.Unlock()
			return rng.Int63()
		}
	}

	a, err := buildAssets()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		opts:     opts,
		logger:   opts.Logger,
		assets:   a,
		sounds:   &sfx.Bank{},
		sessions: NewSessionRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16 * 1024,
		},
		baseCtx:    ctx,
		cancelBase: cancel,
	}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	return s, nil
}

// Sessions exposes the live session registry.
func (s *Server) Sessions() *SessionRegistry {
	return s.sessions
}

// ListenAndServe listens on the configured address until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Starting web server", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
		s.logger.Info("Stopping web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// Shutdown stops accepting connections, ends every session and waits for
// them to save their results.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	err := s.http.Shutdown(ctx)
	s.cancelBase()
	s.sessions.CloseAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("web: shutdown: %w", ctx.Err())
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// handleWS upgrades the request and runs one session until it ends.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	mode := tetris.Mode(r.URL.Query().Get("mode"))
	switch mode {
	case "":
		mode = tetris.ModeMarathon
	case tetris.ModeMarathon, tetris.ModeSprint:
	default:
		http.Error(w, "unknown mode", http.StatusBadRequest)
		return
	}
	player := playerName(r.URL.Query().Get("player"))

	if !s.track() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := NewSession(conn, SessionConfig{
		ID:        uuid.NewString(),
		Mode:      mode,
		Player:    player,
		TickRate:  s.opts.TickRate,
		RecordDir: s.opts.RecordDir,
		Store:     s.opts.Store,
		Config:    s.opts.Config.Current,
		Seed:      s.opts.Seed,
		Logger:    s.logger,
	})

	s.sessions.Register(sess)
	defer s.sessions.Unregister(sess.ID())

	s.logger.Info("session started", "id", sess.ID(), "mode", mode, "player", player, "remote", r.RemoteAddr)
	start := time.Now()
	if err := sess.Run(s.baseCtx); err != nil {
		s.logger.Warn("session error", "id", sess.ID(), "error", err)
	}
	s.logger.Info("session ended", "id", sess.ID(), "duration", time.Since(start).Round(time.Millisecond))
}

// track counts a session in, unless Shutdown has started.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	return true
}

func playerName(raw string) string {
	if raw == "" {
		return "web"
	}
	r := []rune(raw)
	if len(r) > maxPlayerName {
		r = r[:maxPlayerName]
	}
	return string(r)
}
