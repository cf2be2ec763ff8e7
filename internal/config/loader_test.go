package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseTetris(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if diff := cmp.Diff(DefaultTetrisConfig(), cfg); diff != "" {
		t.Errorf("embedded YAML differs from DefaultTetrisConfig (-want +got):\n%s", diff)
	}
}

func TestReadTetrisPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := "gravity:\n  base_ms: 800\nrandomizer: uniform\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Gravity.BaseMS != 800 {
		t.Errorf("BaseMS = %d, expected 800", cfg.Gravity.BaseMS)
	}
	if cfg.Randomizer != RandomizerUniform {
		t.Errorf("Randomizer = %q, expected uniform", cfg.Randomizer)
	}
	// Untouched fields keep defaults
	if cfg.Board.Cols != 10 || cfg.Board.Rows != 20 {
		t.Errorf("board = %+v, expected defaults", cfg.Board)
	}
	if cfg.Gravity.MinMS != 50 {
		t.Errorf("MinMS = %d, expected default 50", cfg.Gravity.MinMS)
	}
}

func TestReadTetrisRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"tiny board", "board: {cols: 2, rows: 20}\n", "board"},
		{"short line table", "scoring: {line_clear: [0, 100]}\n", "line_clear"},
		{"hard drop not above soft", "scoring: {soft_drop: 3, hard_drop_min: 3}\n", "hard_drop_min"},
		{"bad randomizer", "randomizer: tgm\n", "randomizer"},
		{"zero start level", "levels: {start: 0}\n", "levels.start"},
		{"malformed", "board: [\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tetris.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := ReadTetris(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	if _, err := LoadTetris(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config path should be an error")
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		start    int
		baseMS   int
		perLevel int
	}{
		{DifficultyEasy, 1, 700, 10},
		{DifficultyNormal, 1, 500, 10},
		{DifficultyHard, 5, 500, 10},
		{DifficultyFixed, 1, 500, 0},
	}

	for _, tt := range tests {
		cfg := DefaultTetrisConfig()
		ApplyTetrisPreset(&cfg, tt.preset)
		if cfg.Levels.Start != tt.start || cfg.Gravity.BaseMS != tt.baseMS || cfg.Levels.LinesPerLevel != tt.perLevel {
			t.Errorf("%s: got start=%d base=%d perLevel=%d", tt.preset, cfg.Levels.Start, cfg.Gravity.BaseMS, cfg.Levels.LinesPerLevel)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset produced invalid config: %v", tt.preset, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should be empty")
	}
	if !IsFixedPreset(ParsePreset("fixed")) {
		t.Error("fixed should disable progression")
	}
}
