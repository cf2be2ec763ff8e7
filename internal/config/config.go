// Package config provides YAML-based engine configuration, difficulty
// presets, and server settings for tetris-pwa.
package config

// TetrisConfig contains all tunables of the Tetris engine.
type TetrisConfig struct {
	Board      BoardConfig   `yaml:"board"`
	Gravity    GravityConfig `yaml:"gravity"`
	Scoring    ScoringConfig `yaml:"scoring"`
	Levels     LevelConfig   `yaml:"levels"`
	Randomizer string        `yaml:"randomizer"` // "bag" or "uniform"
	Sprint     SprintConfig  `yaml:"sprint"`
	Effects    EffectsConfig `yaml:"effects"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// GravityConfig defines the automatic drop interval curve.
// interval(level) = max(min_ms, base_ms - (level-1) * step_ms)
type GravityConfig struct {
	BaseMS int `yaml:"base_ms"`
	StepMS int `yaml:"step_ms"`
	MinMS  int `yaml:"min_ms"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	LineClear       []int `yaml:"line_clear"` // indexed by lines cleared (0..4), multiplied by level
	SoftDrop        int   `yaml:"soft_drop"`
	HardDropPerCell int   `yaml:"hard_drop_per_cell"`
	HardDropMin     int   `yaml:"hard_drop_min"`
}

// LevelConfig defines level progression.
type LevelConfig struct {
	Start         int `yaml:"start"`
	LinesPerLevel int `yaml:"lines_per_level"` // 0 disables progression
	Max           int `yaml:"max"`
}

// SprintConfig defines the sprint mode goal.
type SprintConfig struct {
	TargetLines int `yaml:"target_lines"`
}

// EffectsConfig defines purely cosmetic timings.
type EffectsConfig struct {
	ClearBannerMS int `yaml:"clear_banner_ms"`
}

// Randomizer names.
const (
	RandomizerBag     = "bag"
	RandomizerUniform = "uniform"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown names yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
