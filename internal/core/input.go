package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow
	ActionBackward           // S, Down arrow
	ActionStrafeLeft         // A
	ActionStrafeRight        // D
	ActionTurnLeft           // Left arrow, Q
	ActionTurnRight          // Right arrow, E
	ActionSnapshot           // Ctrl+S - save the current frame as PNG
	ActionHelp               // ? - toggle key help
	ActionQuit               // Ctrl+C, Esc
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionStrafeLeft:
		return "StrafeLeft"
	case ActionStrafeRight:
		return "StrafeRight"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionSnapshot:
		return "Snapshot"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input for one tick: held or pressed actions plus
// any pointer turning accumulated since the previous tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Turn is a pointer-driven rotation in degrees, positive clockwise.
	Turn float64
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Turn = 0
}

// MoveIntent is the movement requested by an input frame, each axis in [-1, 1].
type MoveIntent struct {
	Forward float64 // +1 forward, -1 backward
	Strafe  float64 // +1 right, -1 left
	Turn    float64 // +1 clockwise, -1 counter-clockwise
}

// Intent folds the frame's actions into a MoveIntent.
// Opposing actions cancel each other out.
func (f InputFrame) Intent() MoveIntent {
	var m MoveIntent
	if f.Has(ActionForward) {
		m.Forward++
	}
	if f.Has(ActionBackward) {
		m.Forward--
	}
	if f.Has(ActionStrafeRight) {
		m.Strafe++
	}
	if f.Has(ActionStrafeLeft) {
		m.Strafe--
	}
	if f.Has(ActionTurnRight) {
		m.Turn++
	}
	if f.Has(ActionTurnLeft) {
		m.Turn--
	}
	return m
}

// IsZero reports whether the intent requests no movement.
func (m MoveIntent) IsZero() bool {
	return m.Forward == 0 && m.Strafe == 0 && m.Turn == 0
}
