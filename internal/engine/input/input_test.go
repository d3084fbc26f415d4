package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type moveLog struct {
	moves []string
	speed float32
}

func (m *moveLog) record(name string, speed float32) {
	m.moves = append(m.moves, name)
	m.speed = speed
}

func (m *moveLog) MoveLeft(s float32)     { m.record("left", s) }
func (m *moveLog) MoveRight(s float32)    { m.record("right", s) }
func (m *moveLog) MoveForward(s float32)  { m.record("forward", s) }
func (m *moveLog) MoveBackward(s float32) { m.record("backward", s) }
func (m *moveLog) MoveUp(s float32)       { m.record("up", s) }
func (m *moveLog) MoveDown(s float32)     { m.record("down", s) }

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		key  Key
		want Action
	}{
		{KeyLeft, ActionMoveLeft},
		{KeyRight, ActionMoveRight},
		{KeyUp, ActionMoveForward},
		{KeyDown, ActionMoveBackward},
		{KeyRightShift, ActionMoveUp},
		{KeyRightCtrl, ActionMoveDown},
		{KeyEscape, ActionQuit},
		{KeyF12, ActionScreenshot},
		{KeyUnknown, ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Action(tt.key), "key %d", tt.key)
	}
}

func TestApply(t *testing.T) {
	m := &moveLog{}
	for _, a := range []Action{
		ActionMoveLeft, ActionMoveRight, ActionMoveForward,
		ActionMoveBackward, ActionMoveUp, ActionMoveDown,
	} {
		assert.True(t, Apply(a, m, 5))
	}
	assert.Equal(t, []string{"left", "right", "forward", "backward", "up", "down"}, m.moves)
	assert.Equal(t, float32(5), m.speed)

	assert.False(t, Apply(ActionQuit, m, 5))
	assert.False(t, Apply(ActionScreenshot, m, 5))
	assert.False(t, Apply(ActionNone, m, 5))
	assert.Len(t, m.moves, 6)
}
