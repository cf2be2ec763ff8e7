package config

import "time"

// LevelCurve calculates level, gravity and score awards from the config.
type LevelCurve struct {
	levels  LevelConfig
	gravity GravityConfig
	scoring ScoringConfig
}

// NewLevelCurve creates a curve for the given config.
func NewLevelCurve(cfg TetrisConfig) *LevelCurve {
	return &LevelCurve{
		levels:  cfg.Levels,
		gravity: cfg.Gravity,
		scoring: cfg.Scoring,
	}
}

// IsProgressive returns whether clearing lines raises the level.
func (c *LevelCurve) IsProgressive() bool {
	return c.levels.LinesPerLevel > 0
}

// Level returns the level reached after clearing the given number of lines.
func (c *LevelCurve) Level(lines int) int {
	level := c.levels.Start
	if c.IsProgressive() {
		level = max(level, lines/c.levels.LinesPerLevel+1)
	}
	return min(level, max(c.levels.Max, c.levels.Start))
}

// GravityInterval returns the automatic drop interval at a level.
func (c *LevelCurve) GravityInterval(level int) time.Duration {
	ms := c.gravity.BaseMS - (level-1)*c.gravity.StepMS
	ms = max(ms, c.gravity.MinMS)
	return time.Duration(ms) * time.Millisecond
}

// GravityTicks converts the interval at a level into simulation ticks.
func (c *LevelCurve) GravityTicks(level, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := int(c.GravityInterval(level) * time.Duration(tickRate) / time.Second)
	return max(ticks, 1)
}

// LineClearPoints returns the award for clearing n lines at once.
func (c *LevelCurve) LineClearPoints(n, level int) int {
	if n <= 0 || len(c.scoring.LineClear) == 0 {
		return 0
	}
	n = min(n, len(c.scoring.LineClear)-1)
	return c.scoring.LineClear[n] * level
}

// SoftDropPoints returns the award for one soft-drop step.
func (c *LevelCurve) SoftDropPoints() int {
	return c.scoring.SoftDrop
}

// HardDropPoints returns the award for a hard drop across the given cells.
func (c *LevelCurve) HardDropPoints(cells int) int {
	return max(cells*c.scoring.HardDropPerCell, c.scoring.HardDropMin)
}
