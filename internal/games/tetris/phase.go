package tetris

import (
	"fmt"
	"time"
)

// Phase is the lifecycle state of a game.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Overlay is the modal shown whenever the game is not running.
type Overlay struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Button  string `json:"button"`
}

// Overlay labels.
const (
	TitleIdle     = "TETRIS"
	TitlePaused   = "PAUSED"
	TitleGameOver = "GAME OVER"
	TitleCleared  = "CLEAR!"

	ButtonStart   = "START"
	ButtonResume  = "RESUME"
	ButtonRestart = "RESTART"

	MessageIdle   = "Arrows move, Up rotates, Space drops, P pauses"
	MessagePaused = "Press P or tap Start to resume"
)

// overlayFor derives the overlay from the phase. Running hides it.
func overlayFor(p Phase, stats Stats, cleared bool, elapsed time.Duration) Overlay {
	switch p {
	case PhaseIdle:
		return Overlay{Visible: true, Title: TitleIdle, Message: MessageIdle, Button: ButtonStart}
	case PhasePaused:
		return Overlay{Visible: true, Title: TitlePaused, Message: MessagePaused, Button: ButtonResume}
	case PhaseGameOver:
		if cleared {
			return Overlay{Visible: true, Title: TitleCleared, Message: "Time: " + formatClock(elapsed), Button: ButtonRestart}
		}
		return Overlay{Visible: true, Title: TitleGameOver, Message: fmt.Sprintf("Score: %d", stats.Score), Button: ButtonRestart}
	default:
		return Overlay{}
	}
}

// formatClock renders m:ss.cc.
func formatClock(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}
