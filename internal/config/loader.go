package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tetrisFile = "tetris.yaml"

// LoadTetris loads the engine configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		return ReadTetris(customPath)
	}

	if userCfgPath := userConfigPath(tetrisFile); userCfgPath != "" {
		if cfg, err := ReadTetris(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := ReadTetris(filepath.Join("configs", tetrisFile)); err == nil {
		return cfg, nil
	}

	cfg, err := parseTetris(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ReadTetris reads and validates a single config file. Fields missing from
// the file keep their default values.
func ReadTetris(path string) (TetrisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parseTetris(data)
	if err != nil {
		return TetrisConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Cols < 4 || c.Board.Rows < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Cols, c.Board.Rows))
	}
	if len(c.Scoring.LineClear) != 5 {
		errs = append(errs, fmt.Errorf("scoring.line_clear needs 5 entries, got %d", len(c.Scoring.LineClear)))
	}
	if c.Gravity.MinMS <= 0 || c.Gravity.BaseMS < c.Gravity.MinMS {
		errs = append(errs, errors.New("gravity.base_ms must be >= gravity.min_ms > 0"))
	}
	if c.Levels.Start < 1 {
		errs = append(errs, errors.New("levels.start must be >= 1"))
	}
	if c.Levels.Max < c.Levels.Start {
		errs = append(errs, errors.New("levels.max must be >= levels.start"))
	}
	if c.Scoring.SoftDrop < 1 {
		errs = append(errs, errors.New("scoring.soft_drop must be >= 1"))
	}
	if c.Scoring.HardDropMin <= c.Scoring.SoftDrop {
		errs = append(errs, errors.New("scoring.hard_drop_min must exceed scoring.soft_drop"))
	}
	if c.Sprint.TargetLines < 1 {
		errs = append(errs, errors.New("sprint.target_lines must be >= 1"))
	}
	switch c.Randomizer {
	case RandomizerBag, RandomizerUniform:
	default:
		errs = append(errs, fmt.Errorf("unknown randomizer %q", c.Randomizer))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Levels.Start = 1
		cfg.Gravity.BaseMS = cfg.Gravity.BaseMS * 7 / 5
	case DifficultyHard:
		cfg.Levels.Start = min(5, cfg.Levels.Max)
	case DifficultyFixed:
		cfg.Levels.LinesPerLevel = 0
	}
}
