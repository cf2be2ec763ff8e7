// Package sfx synthesizes the short sound cues the web client plays.
// Cues are rendered once to WAV and served as static files.
package sfx

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

const SampleRate = beep.SampleRate(22050)

var format = beep.Format{SampleRate: SampleRate, NumChannels: 1, Precision: 2}

var ErrUnknownSound = errors.New("sfx: unknown sound")

// note is one tone segment of a cue. Zero Freq is a rest.
type note struct {
	Freq   float64
	Length time.Duration
}

// cue is a sequence of notes at a fixed volume.
type cue struct {
	notes  []note
	volume float64
}

var cues = map[string]cue{
	"move":     {notes: []note{{220, 25 * time.Millisecond}}, volume: 0.25},
	"rotate":   {notes: []note{{440, 35 * time.Millisecond}}, volume: 0.3},
	"drop":     {notes: []note{{130, 40 * time.Millisecond}, {98, 60 * time.Millisecond}}, volume: 0.5},
	"pause":    {notes: []note{{660, 60 * time.Millisecond}, {0, 20 * time.Millisecond}, {660, 60 * time.Millisecond}}, volume: 0.3},
	"clear":    {notes: []note{{523, 60 * time.Millisecond}, {659, 60 * time.Millisecond}, {784, 90 * time.Millisecond}}, volume: 0.4},
	"tetris":   {notes: []note{{523, 70 * time.Millisecond}, {659, 70 * time.Millisecond}, {784, 70 * time.Millisecond}, {1047, 160 * time.Millisecond}}, volume: 0.45},
	"levelup":  {notes: []note{{392, 50 * time.Millisecond}, {523, 50 * time.Millisecond}, {659, 50 * time.Millisecond}, {784, 120 * time.Millisecond}}, volume: 0.4},
	"gameover": {notes: []note{{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 150 * time.Millisecond}, {196, 400 * time.Millisecond}}, volume: 0.45},
}

// Names lists every cue, sorted.
func Names() []string {
	names := make([]string, 0, len(cues))
	for name := range cues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Streamer returns the named cue as a finite stream.
func Streamer(name string) (beep.Streamer, error) {
	c, ok := cues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}

	parts := make([]beep.Streamer, 0, len(c.notes))
	for _, n := range c.notes {
		s, err := tone(n)
		if err != nil {
			return nil, fmt.Errorf("sfx: %s: %w", name, err)
		}
		parts = append(parts, s)
	}
	return volume(beep.Seq(parts...), c.volume), nil
}

// Length returns the duration of the named cue.
func Length(name string) time.Duration {
	var d time.Duration
	for _, n := range cues[name].notes {
		d += n.Length
	}
	return d
}

func tone(n note) (beep.Streamer, error) {
	samples := SampleRate.N(n.Length)
	if n.Freq == 0 {
		return beep.Silence(samples), nil
	}
	sine, err := generators.SineTone(SampleRate, n.Freq)
	if err != nil {
		return nil, err
	}
	attack := min(SampleRate.N(5*time.Millisecond), samples/4)
	release := min(SampleRate.N(20*time.Millisecond), samples/2)
	return &envelope{s: beep.Take(samples, sine), total: samples, attack: attack, release: release}, nil
}

// volume scales linearly; math.Log2(0) is -Inf so zero is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: log2(v)}
}

// Encode writes the named cue as 16-bit mono WAV.
func Encode(w io.WriteSeeker, name string) error {
	s, err := Streamer(name)
	if err != nil {
		return err
	}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("sfx: encode %s: %w", name, err)
	}
	return nil
}

// Bank holds every cue rendered to WAV bytes.
type Bank struct {
	once  sync.Once
	files map[string][]byte
	err   error
}

// WAV returns the encoded cue, rendering the whole bank on first use.
func (b *Bank) WAV(name string) ([]byte, error) {
	b.once.Do(b.render)
	if b.err != nil {
		return nil, b.err
	}
	data, ok := b.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	return data, nil
}

func (b *Bank) render() {
	b.files = make(map[string][]byte, len(cues))
	for _, name := range Names() {
		var buf memFile
		if err := Encode(&buf, name); err != nil {
			b.err = err
			return
		}
		b.files[name] = buf.Bytes()
	}
}

var (
	errInvalidWhence = errors.New("sfx: invalid whence")
	errNegativeSeek  = errors.New("sfx: negative position")
)
