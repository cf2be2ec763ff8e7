package config

import (
	"testing"
	"time"
)

func TestLevelCurveLevel(t *testing.T) {
	c := NewLevelCurve(DefaultTetrisConfig())

	tests := []struct {
		lines, want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{25, 3},
		{500, 20}, // capped at max
	}
	for _, tt := range tests {
		if got := c.Level(tt.lines); got != tt.want {
			t.Errorf("Level(%d) = %d, expected %d", tt.lines, got, tt.want)
		}
	}
}

func TestLevelCurveStartLevelIsFloor(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Levels.Start = 5
	c := NewLevelCurve(cfg)

	if got := c.Level(0); got != 5 {
		t.Errorf("Level(0) = %d, expected start level 5", got)
	}
	if got := c.Level(60); got != 7 {
		t.Errorf("Level(60) = %d, expected 7", got)
	}
}

func TestLevelCurveFixed(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	c := NewLevelCurve(cfg)

	if c.IsProgressive() {
		t.Error("fixed preset should not progress")
	}
	if got := c.Level(100); got != 1 {
		t.Errorf("Level(100) = %d, expected 1", got)
	}
}

func TestGravityInterval(t *testing.T) {
	c := NewLevelCurve(DefaultTetrisConfig())

	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 460 * time.Millisecond},
		{10, 140 * time.Millisecond},
		{12, 60 * time.Millisecond},
		{13, 50 * time.Millisecond}, // floor
		{20, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := c.GravityInterval(tt.level); got != tt.want {
			t.Errorf("GravityInterval(%d) = %v, expected %v", tt.level, got, tt.want)
		}
	}

	if got := c.GravityTicks(1, 60); got != 30 {
		t.Errorf("GravityTicks(1, 60) = %d, expected 30", got)
	}
	if got := c.GravityTicks(20, 10); got != 1 {
		t.Errorf("GravityTicks should never drop below 1, got %d", got)
	}
}

func TestPoints(t *testing.T) {
	c := NewLevelCurve(DefaultTetrisConfig())

	if got := c.LineClearPoints(4, 3); got != 2400 {
		t.Errorf("tetris at level 3 = %d, expected 2400", got)
	}
	if got := c.LineClearPoints(0, 3); got != 0 {
		t.Errorf("no lines = %d, expected 0", got)
	}
	if got := c.SoftDropPoints(); got != 1 {
		t.Errorf("SoftDropPoints = %d, expected 1", got)
	}
	if got := c.HardDropPoints(0); got != 2 {
		t.Errorf("HardDropPoints(0) = %d, expected floor 2", got)
	}
	if got := c.HardDropPoints(17); got != 34 {
		t.Errorf("HardDropPoints(17) = %d, expected 34", got)
	}
	if c.HardDropPoints(0) <= c.SoftDropPoints() {
		t.Error("a hard drop must always beat a soft drop step")
	}
}
