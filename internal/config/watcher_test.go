package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("gravity:\n  base_ms: 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, DifficultyNormal, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if got := w.Current().Gravity.BaseMS; got != 600 {
		t.Fatalf("initial BaseMS = %d, expected 600", got)
	}

	changed := make(chan TetrisConfig, 1)
	w.OnChange(func(cfg TetrisConfig) {
		select {
		case changed <- cfg:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := os.WriteFile(path, []byte("gravity:\n  base_ms: 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changed:
		if cfg.Gravity.BaseMS != 900 {
			t.Errorf("reloaded BaseMS = %d, expected 900", cfg.Gravity.BaseMS)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload within 5s")
	}

	if got := w.Current().Gravity.BaseMS; got != 900 {
		t.Errorf("Current().BaseMS = %d, expected 900", got)
	}
}

func TestWatcherKeepsPreviousOnInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("randomizer: bag\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, "", log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("randomizer: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.reload()

	if got := w.Current().Randomizer; got != RandomizerBag {
		t.Errorf("Randomizer = %q, invalid reload should keep bag", got)
	}
}
