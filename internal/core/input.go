package core

// Action represents a semantic game action, abstracted from physical input.
// Keyboard keys, touch controls and terminal keys all translate into these,
// so games never see where an input came from.
type Action int

const (
	ActionNone        Action = iota
	ActionMoveLeft           // ArrowLeft, btn-left
	ActionMoveRight          // ArrowRight, btn-right
	ActionSoftDrop           // ArrowDown, btn-down
	ActionRotate             // ArrowUp, btn-rotate, tap
	ActionRotateCCW          // Z
	ActionHardDrop           // Space, btn-drop, swipe down
	ActionTogglePause        // P, btn-pause
	ActionStart              // Enter, btn-start (start, resume or restart)
	ActionQuit               // Q, Ctrl+C
	ActionUp                 // menu navigation
	ActionDown               // menu navigation
	ActionConfirm            // menu selection
	ActionBack               // menu back
)

var actionNames = [...]string{
	ActionNone:        "None",
	ActionMoveLeft:    "MoveLeft",
	ActionMoveRight:   "MoveRight",
	ActionSoftDrop:    "SoftDrop",
	ActionRotate:      "Rotate",
	ActionRotateCCW:   "RotateCCW",
	ActionHardDrop:    "HardDrop",
	ActionTogglePause: "TogglePause",
	ActionStart:       "Start",
	ActionQuit:        "Quit",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// ParseAction is the inverse of String. Used when reading recorded inputs.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// GameplayActions lists the actions a game consumes, in the fixed order
// they are applied within a single frame. Iterating this slice instead of
// the frame's map keeps simulation deterministic.
var GameplayActions = []Action{
	ActionStart,
	ActionTogglePause,
	ActionMoveLeft,
	ActionMoveRight,
	ActionRotate,
	ActionRotateCCW,
	ActionSoftDrop,
	ActionHardDrop,
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Ordered returns the triggered gameplay actions in GameplayActions order.
func (f InputFrame) Ordered() []Action {
	var out []Action
	for _, a := range GameplayActions {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
