// Package input defines platform-neutral input events and the key bindings
// that drive the camera.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a platform-neutral key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyRightShift
	KeyRightCtrl
	KeyEscape
	KeyF12
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Button uint8
}

// Action is what a key does.
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveForward
	ActionMoveBackward
	ActionMoveUp
	ActionMoveDown
	ActionQuit
	ActionScreenshot
)

// Bindings maps keys to actions.
type Bindings map[Key]Action

// DefaultBindings returns arrow keys for planar movement, right shift and
// right ctrl for vertical movement, escape to quit and F12 for a
// screenshot.
func DefaultBindings() Bindings {
	return Bindings{
		KeyLeft:       ActionMoveLeft,
		KeyRight:      ActionMoveRight,
		KeyUp:         ActionMoveForward,
		KeyDown:       ActionMoveBackward,
		KeyRightShift: ActionMoveUp,
		KeyRightCtrl:  ActionMoveDown,
		KeyEscape:     ActionQuit,
		KeyF12:        ActionScreenshot,
	}
}

// Action returns the action bound to k.
func (b Bindings) Action(k Key) Action {
	return b[k]
}

// Mover is the camera surface driven by movement actions.
type Mover interface {
	MoveLeft(speed float32)
	MoveRight(speed float32)
	MoveForward(speed float32)
	MoveBackward(speed float32)
	MoveUp(speed float32)
	MoveDown(speed float32)
}

// Apply performs a movement action on m. It reports false for actions that
// are not movements.
func Apply(a Action, m Mover, speed float32) bool {
	switch a {
	case ActionMoveLeft:
		m.MoveLeft(speed)
	case ActionMoveRight:
		m.MoveRight(speed)
	case ActionMoveForward:
		m.MoveForward(speed)
	case ActionMoveBackward:
		m.MoveBackward(speed)
	case ActionMoveUp:
		m.MoveUp(speed)
	case ActionMoveDown:
		m.MoveDown(speed)
	default:
		return false
	}
	return true
}
