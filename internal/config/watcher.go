package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher keeps an engine config current by reloading its file on change.
// Readers call Current; sessions that already started keep their copy.
type Watcher struct {
	path     string
	preset   DifficultyPreset
	logger   *log.Logger
	watcher  *fsnotify.Watcher
	current  atomic.Pointer[TetrisConfig]
	debounce time.Duration

	mu        sync.Mutex
	listeners []func(TetrisConfig)
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// NewWatcher loads path once and prepares to watch it.
func NewWatcher(path string, preset DifficultyPreset, logger *log.Logger) (*Watcher, error) {
	cfg, err := ReadTetris(path)
	if err != nil {
		return nil, err
	}
	ApplyTetrisPreset(&cfg, preset)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watcher: %w", err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		preset:   preset,
		logger:   logger,
		watcher:  fw,
		debounce: 250 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	w.current.Store(&cfg)
	return w, nil
}

// Current returns the latest valid config.
func (w *Watcher) Current() TetrisConfig {
	return *w.current.Load()
}

// OnChange registers a callback run after every successful reload.
func (w *Watcher) OnChange(fn func(TetrisConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Start begins watching. The parent directory is watched because editors
// often replace files instead of writing them in place.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("config: watch %s: %w", w.path, err)
	}
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "err", err)
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := ReadTetris(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected, keeping previous", "path", w.path, "err", err)
		return
	}
	ApplyTetrisPreset(&cfg, w.preset)
	w.current.Store(&cfg)
	w.logger.Info("config reloaded", "path", w.path)

	w.mu.Lock()
	listeners := append([]func(TetrisConfig){}, w.listeners...)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
}
