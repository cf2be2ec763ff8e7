package web

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/core"
	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
)

func newOfflineSession(id string, cfg func() config.TetrisConfig) *Session {
	return NewSession(nil, SessionConfig{
		ID:     id,
		Mode:   tetris.ModeMarathon,
		Config: cfg,
		Seed:   func() int64 { return 7 },
		Logger: log.New(io.Discard),
	})
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	b := newOfflineSession("b", nil)
	a := newOfflineSession("a", nil)
	r.Register(b)
	r.Register(a)

	if r.Count() != 2 {
		t.Fatalf("Count = %d, want 2", r.Count())
	}
	if got, ok := r.Get("a"); !ok || got != a {
		t.Error("Get(a) did not return the registered session")
	}
	if ids := r.IDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v, want [a b]", ids)
	}

	r.CloseAll()
	r.CloseAll()
	for _, s := range []*Session{a, b} {
		select {
		case <-s.quit:
		default:
			t.Errorf("session %s not closed", s.ID())
		}
	}

	r.Unregister("a")
	if _, ok := r.Get("a"); ok {
		t.Error("a still registered")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
}

func TestSessionApply(t *testing.T) {
	s := newOfflineSession("x", nil)

	if s.Apply(core.ActionMoveLeft) {
		t.Error("move before start should be absorbed")
	}
	if !s.Apply(core.ActionStart) {
		t.Fatal("start should change state")
	}
	if s.Apply(core.ActionStart) {
		t.Error("start while running should be a no-op")
	}
	if got := s.Snapshot().Phase; got != tetris.PhaseRunning {
		t.Fatalf("phase = %v, want running", got)
	}

	select {
	case <-s.notify:
		t.Error("Apply must not signal by itself")
	default:
	}
}

func TestSessionRestartUsesCurrentConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	s := newOfflineSession("x", func() config.TetrisConfig { return cfg })

	s.Apply(core.ActionStart)
	for s.Snapshot().Phase != tetris.PhaseGameOver {
		s.Apply(core.ActionHardDrop)
	}
	over := s.Snapshot()
	if !s.finished {
		t.Fatal("game over was not recorded as finished")
	}

	cfg.Scoring.SoftDrop = 5
	s.Apply(core.ActionStart)
	fresh := s.Snapshot()
	if fresh.Phase != tetris.PhaseRunning {
		t.Fatalf("phase = %v, want running", fresh.Phase)
	}
	if fresh.Revision <= over.Revision {
		t.Errorf("revision went from %d to %d", over.Revision, fresh.Revision)
	}
	if fresh.Stats.Score != 0 {
		t.Errorf("score = %d after restart, want 0", fresh.Stats.Score)
	}
	if s.finished {
		t.Error("finished flag not cleared on restart")
	}
	if got := s.game.Config().Scoring.SoftDrop; got != 5 {
		t.Errorf("restart kept old config: soft drop = %d", got)
	}
}
