package tetris

import "github.com/vovakirdan/tetris-pwa/internal/config"

// Stats is the score, level and line count shown to the player.
type Stats struct {
	Score int `json:"score"`
	Level int `json:"level"`
	Lines int `json:"lines"`
}

// StatsObserver is a presentation surface for Stats.
type StatsObserver interface {
	StatsChanged(Stats)
}

// StatsObserverFunc adapts a function to StatsObserver.
type StatsObserverFunc func(Stats)

// StatsChanged calls f.
func (f StatsObserverFunc) StatsChanged(s Stats) { f(s) }

// ScoreBoard owns Stats. Only the engine mutates it; every surface
// subscribes and is notified synchronously with the complete value after
// each mutation, so all surfaces agree as soon as the mutation returns.
type ScoreBoard struct {
	stats     Stats
	curve     *config.LevelCurve
	observers []subscription
	nextID    int
}

type subscription struct {
	id int
	o  StatsObserver
}

// NewScoreBoard creates a scoreboard at the curve's starting level.
func NewScoreBoard(curve *config.LevelCurve) *ScoreBoard {
	s := &ScoreBoard{curve: curve}
	s.stats = Stats{Level: curve.Level(0)}
	return s
}

// Stats returns the current value.
func (s *ScoreBoard) Stats() Stats {
	return s.stats
}

// Subscribe registers o and immediately delivers the current value.
// The returned func removes the subscription.
func (s *ScoreBoard) Subscribe(o StatsObserver) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, o: o})
	o.StatsChanged(s.stats)

	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *ScoreBoard) publish() {
	for _, sub := range s.observers {
		sub.o.StatsChanged(s.stats)
	}
}

func (s *ScoreBoard) reset(curve *config.LevelCurve) {
	s.curve = curve
	s.stats = Stats{Level: curve.Level(0)}
	s.publish()
}

func (s *ScoreBoard) addSoftDrop() {
	s.stats.Score += s.curve.SoftDropPoints()
	s.publish()
}

func (s *ScoreBoard) addHardDrop(cells int) {
	s.stats.Score += s.curve.HardDropPoints(cells)
	s.publish()
}

// addLines scores n cleared rows at the current level, then levels up.
func (s *ScoreBoard) addLines(n int) int {
	if n <= 0 {
		return 0
	}
	points := s.curve.LineClearPoints(n, s.stats.Level)
	s.stats.Score += points
	s.stats.Lines += n
	s.stats.Level = s.curve.Level(s.stats.Lines)
	s.publish()
	return points
}
