package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hardcoded engine configuration.
// It matches defaults/tetris.yaml and is used if the embedded file fails to parse.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Cols: 10,
			Rows: 20,
		},
		Gravity: GravityConfig{
			BaseMS: 500,
			StepMS: 40,
			MinMS:  50,
		},
		Scoring: ScoringConfig{
			LineClear:       []int{0, 100, 300, 500, 800},
			SoftDrop:        1,
			HardDropPerCell: 2,
			HardDropMin:     2,
		},
		Levels: LevelConfig{
			Start:         1,
			LinesPerLevel: 10,
			Max:           20,
		},
		Randomizer: RandomizerBag,
		Sprint: SprintConfig{
			TargetLines: 40,
		},
		Effects: EffectsConfig{
			ClearBannerMS: 360,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrisYAML
}
