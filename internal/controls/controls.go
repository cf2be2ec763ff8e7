// Package controls translates every physical input channel (browser
// keyboard, touch controls and gestures, terminal keys) into core.Action.
// Nothing else in the module interprets raw input.
package controls

import (
	"sort"

	"github.com/vovakirdan/tetris-pwa/internal/core"
)

// Channel names an input source.
type Channel string

const (
	ChannelKeyboard Channel = "keyboard"
	ChannelTouch    Channel = "touch"
	ChannelTerminal Channel = "terminal"
)

// Binding is one input-to-action mapping.
type Binding struct {
	Channel Channel
	Input   string
	Action  core.Action
}

// TouchControl is an on-screen button of the web client.
type TouchControl struct {
	ID     string
	Label  string
	Title  string
	Action core.Action
	Repeat bool // auto-repeat while held
}

// Control IDs shared by the page template, the client and the harness.
const (
	ButtonLeft   = "btn-left"
	ButtonDown   = "btn-down"
	ButtonRotate = "btn-rotate"
	ButtonRight  = "btn-right"
	ButtonDrop   = "btn-drop"
	ButtonPause  = "btn-pause"
	ButtonStart  = "btn-start"

	GestureTap       = "gesture-tap"
	GestureSwipeDown = "gesture-swipe-down"
)

// Gesture thresholds in CSS pixels. A touch that moves less than
// TapMaxPx on both axes is a tap; one that moves down more than
// SwipeMinPx, and more down than sideways, is a swipe.
const (
	TapMaxPx   = 15
	SwipeMinPx = 30
)

// TouchControls lists the touch pad buttons in layout order.
var TouchControls = []TouchControl{
	{ID: ButtonLeft, Label: "◀", Title: "Move left", Action: core.ActionMoveLeft, Repeat: true},
	{ID: ButtonDown, Label: "▼", Title: "Soft drop", Action: core.ActionSoftDrop, Repeat: true},
	{ID: ButtonRotate, Label: "↻", Title: "Rotate", Action: core.ActionRotate},
	{ID: ButtonRight, Label: "▶", Title: "Move right", Action: core.ActionMoveRight, Repeat: true},
	{ID: ButtonDrop, Label: "⤓", Title: "Hard drop", Action: core.ActionHardDrop},
	{ID: ButtonPause, Label: "❚❚", Title: "Pause", Action: core.ActionTogglePause},
}

var keyActions = map[string]core.Action{
	"ArrowLeft":  core.ActionMoveLeft,
	"ArrowRight": core.ActionMoveRight,
	"ArrowDown":  core.ActionSoftDrop,
	"ArrowUp":    core.ActionRotate,
	"x":          core.ActionRotate,
	"X":          core.ActionRotate,
	"z":          core.ActionRotateCCW,
	"Z":          core.ActionRotateCCW,
	" ":          core.ActionHardDrop,
	"p":          core.ActionTogglePause,
	"P":          core.ActionTogglePause,
	"Enter":      core.ActionStart,
}

var controlActions = func() map[string]core.Action {
	m := map[string]core.Action{
		ButtonStart:      core.ActionStart,
		GestureTap:       core.ActionRotate,
		GestureSwipeDown: core.ActionHardDrop,
	}
	for _, c := range TouchControls {
		m[c.ID] = c.Action
	}
	return m
}()

var terminalActions = map[string]core.Action{
	"left":   core.ActionMoveLeft,
	"h":      core.ActionMoveLeft,
	"a":      core.ActionMoveLeft,
	"right":  core.ActionMoveRight,
	"l":      core.ActionMoveRight,
	"d":      core.ActionMoveRight,
	"down":   core.ActionSoftDrop,
	"j":      core.ActionSoftDrop,
	"s":      core.ActionSoftDrop,
	"up":     core.ActionRotate,
	"k":      core.ActionRotate,
	"w":      core.ActionRotate,
	"x":      core.ActionRotate,
	"z":      core.ActionRotateCCW,
	" ":      core.ActionHardDrop,
	"p":      core.ActionTogglePause,
	"esc":    core.ActionTogglePause,
	"enter":  core.ActionStart,
	"q":      core.ActionQuit,
	"ctrl+c": core.ActionQuit,
}

var menuActions = map[string]core.Action{
	"up":     core.ActionUp,
	"k":      core.ActionUp,
	"w":      core.ActionUp,
	"down":   core.ActionDown,
	"j":      core.ActionDown,
	"s":      core.ActionDown,
	"enter":  core.ActionConfirm,
	" ":      core.ActionConfirm,
	"b":      core.ActionBack,
	"esc":    core.ActionBack,
	"q":      core.ActionQuit,
	"ctrl+c": core.ActionQuit,
}

// FromKey maps a browser KeyboardEvent.key value.
func FromKey(key string) core.Action {
	return keyActions[key]
}

// FromControl maps a touch control ID or gesture name.
func FromControl(id string) core.Action {
	return controlActions[id]
}

// FromTerminal maps a Bubble Tea key string during play.
func FromTerminal(key string) core.Action {
	return terminalActions[key]
}

// MenuFromTerminal maps a Bubble Tea key string on menu screens.
func MenuFromTerminal(key string) core.Action {
	return menuActions[key]
}

// Bindings lists every mapping of a channel, sorted for display.
func Bindings(ch Channel) []Binding {
	var src map[string]core.Action
	switch ch {
	case ChannelKeyboard:
		src = keyActions
	case ChannelTouch:
		src = controlActions
	case ChannelTerminal:
		src = terminalActions
	default:
		return nil
	}

	out := make([]Binding, 0, len(src))
	for in, a := range src {
		out = append(out, Binding{Channel: ch, Input: in, Action: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Input < out[j].Input
	})
	return out
}
