// Package replay records the inputs of a game as zstd-compressed JSONL
// and re-simulates them. The engine is deterministic, so a recording is
// just the seed, the config and every accepted action with its tick.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tetris-pwa/internal/config"
)

const FormatVersion = 1

// Line kinds.
const (
	KindHeader = "header"
	KindInput  = "input"
	KindEnd    = "end"
)

// Header opens every recording.
type Header struct {
	Version   int                 `json:"version"`
	Mode      string              `json:"mode"`
	Seed      int64               `json:"seed"`
	TickRate  int                 `json:"tick_rate"`
	Source    string              `json:"source,omitempty"`
	Player    string              `json:"player,omitempty"`
	StartedAt time.Time           `json:"started_at"`
	Config    config.TetrisConfig `json:"config"`
}

// Input is one action applied before the given tick advanced.
type Input struct {
	Tick   uint64 `json:"tick"`
	Action string `json:"action"`
}

// End carries the final result for verification.
type End struct {
	Tick  uint64 `json:"tick"`
	Score int    `json:"score"`
	Level int    `json:"level"`
	Lines int    `json:"lines"`
}

// line is the on-disk JSONL record.
type line struct {
	Kind   string  `json:"kind"`
	Header *Header `json:"header,omitempty"`
	Input  *Input  `json:"input,omitempty"`
	End    *End    `json:"end,omitempty"`
}

// Recording is a fully decoded replay file.
type Recording struct {
	Header Header
	Inputs []Input
	End    *End // nil when the recording was cut short
}

// FileName returns the conventional file name for a recording.
func FileName(mode, id string) string {
	return fmt.Sprintf("%s-%s.jsonl.zst", mode, id)
}
