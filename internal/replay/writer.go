package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrClosed = errors.New("replay: recorder closed")

// Recorder writes one recording. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	closer io.Closer // underlying file, if owned
	enc    *zstd.Encoder
	w      *bufio.Writer
	ended  bool
	closed bool
}

// NewRecorder starts a recording on w and writes the header.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("replay: zstd: %w", err)
	}
	r := &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 32*1024)}
	if h.Version == 0 {
		h.Version = FormatVersion
	}
	if err := r.write(line{Kind: KindHeader, Header: &h}); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return r, nil
}

// Create starts a recording in a new file, creating parent directories.
func Create(path string, h Header) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("replay: create %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: create %s: %w", path, err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Input records an action applied at tick.
func (r *Recorder) Input(tick uint64, action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(line{Kind: KindInput, Input: &Input{Tick: tick, Action: action}})
}

// End records the final result. Further inputs are rejected.
func (r *Recorder) End(e End) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.writeLocked(line{Kind: KindEnd, End: &e}); err != nil {
		return err
	}
	r.ended = true
	return nil
}

// Close flushes the stream and closes an owned file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	err := r.w.Flush()
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("replay: close: %w", err)
	}
	return nil
}

func (r *Recorder) write(l line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(l)
}

func (r *Recorder) writeLocked(l line) error {
	if r.closed || r.ended {
		return ErrClosed
	}
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	return nil
}
